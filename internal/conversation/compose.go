package conversation

import (
	"github.com/bowerhall/brandchat/internal/chat"
	"github.com/bowerhall/brandchat/internal/config"
	"github.com/bowerhall/brandchat/internal/upload"
)

// composeUserContent builds the outgoing message body. Without files the text
// passes through untouched, even when empty.
func composeUserContent(text string, files []chat.FileHandle, c config.Copy) string {
	if len(files) == 0 {
		return text
	}

	head := text
	if head == "" {
		head = c.LeadIn
	}
	return head + "\n\n" + upload.FormatFileList(files)
}

func fileNames(files []chat.FileHandle) []string {
	if len(files) == 0 {
		return nil
	}
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	return names
}

func outcomeDetail(r upload.Result) string {
	switch r := r.(type) {
	case upload.Success:
		return r.Path
	case upload.Failure:
		return r.Reason
	case upload.TransportError:
		return r.Reason
	}
	return ""
}
