// Package logx is pewpager's logging: leveled zerolog lines with a short
// file:line caller, readable on the console and JSON in the log file.
//
// Library packages (pager and its bridges) take a Logger and default to the
// zero value, which discards everything. Only cmd/pagerbot builds a Service.
package logx
