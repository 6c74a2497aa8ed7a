package utils

import "strings"

// AddToLogMessage appends one entry to a request's log builder; the handler
// flushes the builder as a single line when it returns.
func AddToLogMessage(logMessagesBuilder *strings.Builder, strToAdd string) {
	logMessagesBuilder.WriteString(strToAdd)
	logMessagesBuilder.WriteString("; ")
}
