// Package infra holds the technical adapters: dataset files, MQTT
// publishing, metrics exporters and error monitoring. Its packages depend
// only on interfaces defined in the core packages.
package infra
