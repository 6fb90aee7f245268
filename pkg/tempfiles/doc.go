// Package tempfiles provides the scratch files the script backend executes.
//
// A Provider hands out uniquely named files in one directory. The OS
// implementation writes under the configured temp directory; tests inject
// their own directory so leftover files can be counted.
package tempfiles
