// Package utils holds the generic decorators every transaction passes
// through: logging, panic recovery, savepoints and action tags.
package utils
