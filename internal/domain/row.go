// Package domain holds the delivery table aggregate: who delivered which
// activity, and when each person was initiated.
package domain

// Row is the raw store schema shared by every adapter. Delivered and Started
// are `any` because backing stores disagree on cell types: flat files yield
// strings, spreadsheets yield native booleans and serial date numbers, SQL
// yields typed values. Reads route everything through coerce; writes always
// emit the canonical string forms.
type Row struct {
	Person    string
	Activity  string
	Delivered any
	Started   any
}
