package upload

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bowerhall/brandchat/internal/chat"
)

// Result is the decoded outcome of uploading one file. It is one of
// Success, Failure or TransportError.
type Result interface {
	File() string
	Outcome() Outcome
}

type Outcome string

const (
	OutcomeSuccess        Outcome = "success"
	OutcomeServerError    Outcome = "server_error"
	OutcomeTransportError Outcome = "transport_error"
)

type Success struct {
	Filename string
	FileType string
	SizeMB   float64
	Path     string
	Preview  Preview
}

// Failure is a well-formed response with success=false.
type Failure struct {
	Filename string
	Reason   string
}

// TransportError means no usable response was obtained.
type TransportError struct {
	Filename string
	Reason   string
}

func (s Success) File() string        { return s.Filename }
func (f Failure) File() string        { return f.Filename }
func (e TransportError) File() string { return e.Filename }

func (Success) Outcome() Outcome        { return OutcomeSuccess }
func (Failure) Outcome() Outcome        { return OutcomeServerError }
func (TransportError) Outcome() Outcome { return OutcomeTransportError }

// Preview is either PreviewAvailable or PreviewUnavailable.
type Preview interface {
	Available() bool
}

type PreviewAvailable struct {
	DataURI string
}

type PreviewUnavailable struct{}

func (PreviewAvailable) Available() bool   { return true }
func (PreviewUnavailable) Available() bool { return false }

type response struct {
	Success          bool    `json:"success"`
	OriginalFilename string  `json:"original_filename"`
	FileType         string  `json:"file_type"`
	FileSizeMB       float64 `json:"file_size_mb"`
	RelativePath     string  `json:"relative_path"`
	Error            string  `json:"error"`
	Preview          *struct {
		Available bool   `json:"available"`
		Base64    string `json:"base64"`
	} `json:"preview"`
}

// Decode turns a raw response for file into a Result. Bodies that are not
// JSON count as transport failures: nothing usable came back.
func Decode(file chat.FileHandle, status int, body []byte) Result {
	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return TransportError{
			Filename: file.Name,
			Reason:   fmt.Sprintf("invalid response (HTTP %d): %v", status, err),
		}
	}

	if !resp.Success {
		return Failure{Filename: file.Name, Reason: resp.Error}
	}

	name := resp.OriginalFilename
	if name == "" {
		name = file.Name
	}

	return Success{
		Filename: name,
		FileType: resp.FileType,
		SizeMB:   resp.FileSizeMB,
		Path:     resp.RelativePath,
		Preview:  decodePreview(resp),
	}
}

func decodePreview(resp response) Preview {
	if resp.Preview == nil || !resp.Preview.Available {
		return PreviewUnavailable{}
	}
	if !strings.HasPrefix(resp.Preview.Base64, "data:image/") {
		return PreviewUnavailable{}
	}
	return PreviewAvailable{DataURI: resp.Preview.Base64}
}
