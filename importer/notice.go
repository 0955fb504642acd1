package importer

import (
	"fmt"

	"github.com/ByLCY/caseframe/host"
)

const (
	failurePrefix = "❌ "
	successPrefix = "✨ "
)

var failureNotices = map[Code]string{
	CodeMalformedInput:     "Invalid JSON format. Please copy the blocks from the exporter.",
	CodeEmptyInput:         "No blocks found in JSON",
	CodeNoRenderableOutput: "No text frames created. Check your JSON structure.",
	CodeUnexpectedFailure:  "Error creating text frames. Check the log for details.",
}

// noticeFor builds the single user-facing message of an import.
func noticeFor(out *Outcome) host.Notice {
	if out.Err != nil {
		msg, ok := failureNotices[GetCode(out.Err)]
		if !ok {
			msg = failureNotices[CodeUnexpectedFailure]
		}
		return host.Notice{Kind: host.NoticeError, Message: failurePrefix + msg}
	}
	return host.Notice{
		Kind:    host.NoticeSuccess,
		Message: successPrefix + fmt.Sprintf("Created %d text frames from %d blocks!", out.Created, out.Submitted),
	}
}
