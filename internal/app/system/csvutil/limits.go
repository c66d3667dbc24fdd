// internal/app/system/csvutil/limits.go
package csvutil

// MaxRows caps a single export.
const MaxRows = 20000
