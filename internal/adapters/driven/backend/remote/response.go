package remote

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
)

// editResponse covers every response shape the edit service has used.
type editResponse struct {
	FileName   string `json:"fileName"`
	OutputFile string `json:"outputFile"`
	Message    string `json:"message"`
	Files      []struct {
		FileName     string `json:"fileName"`
		OutputFile   string `json:"outputFile"`
		OriginalName string `json:"originalName"`
		Error        string `json:"error"`
	} `json:"files"`
}

// normaliseResponse extracts the output file name from an edit response.
// Accepted shapes, in priority order:
//
//	"name.pdf"
//	{"fileName": "name.pdf"}
//	{"outputFile": "name.pdf"}
//	{"files": [{"outputFile": "name.pdf"}]} or {"files": [{"fileName": "name.pdf"}]}
//
// Any directory prefix is stripped.
func normaliseResponse(body []byte) (string, error) {
	var bare string
	if err := json.Unmarshal(body, &bare); err == nil {
		return cleanName(bare)
	}

	var resp editResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrUnrecognisedResponse, snippet(body))
	}

	name := resp.FileName
	if name == "" {
		name = resp.OutputFile
	}
	if name == "" && len(resp.Files) > 0 {
		first := resp.Files[0]
		name = first.OutputFile
		if name == "" {
			name = first.FileName
		}
		if name == "" && first.Error != "" {
			return "", fmt.Errorf("%w: %s", domain.ErrBackend, first.Error)
		}
	}

	return cleanName(name)
}

func cleanName(name string) (string, error) {
	clean := domain.BaseFileName(name)
	if clean == "" {
		return "", domain.ErrUnrecognisedResponse
	}
	return clean, nil
}

// snippet trims a response body for error messages.
func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
