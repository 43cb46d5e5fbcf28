// Package metrics records build pipeline metrics.
//
// NoopRecorder stands in when the App is built without a recorder, so engine
// code never checks for a nil recorder. PrometheusRecorder registers its collectors
// on a private registry and can export them for the node-exporter textfile
// collector with WriteTextfile.
package metrics
