// Package logger provides structured logging for the protokoll services
// built on zerolog.
//
// Stages and collaborators tag their loggers with WithComponent; field
// key constants keep job directory, stage, and speaker attributes
// consistent across the pipeline, the worker, and the HTTP front door.
package logger
