// Package site loads a Jekyll-style source tree and generates one index
// page per post category under categories/<name>/.
package site
