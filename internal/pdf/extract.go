// Package pdf converts uploaded PDFs to plain text through ConvertAPI.
package pdf

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	httpClient "quizify/internal/utility/http"
)

const convertEndpoint = "https://v2.convertapi.com/convert/pdf/to/txt"

type Extractor struct {
	http   *httpClient.Client
	secret string
}

func NewExtractor(secret string) *Extractor {
	return &Extractor{
		http:   httpClient.NewHttpClient(),
		secret: secret,
	}
}

func (e *Extractor) Configured() bool {
	return e != nil && e.secret != ""
}

type fileValue struct {
	Name string `json:"Name"`
	Data string `json:"Data"`
}

type convertParameter struct {
	Name      string     `json:"Name"`
	Value     any        `json:"Value,omitempty"`
	FileValue *fileValue `json:"FileValue,omitempty"`
}

type convertRequest struct {
	Parameters []convertParameter `json:"Parameters"`
}

type convertResponse struct {
	Files []struct {
		Url       string `json:"Url"`
		PageCount int    `json:"PageCount"`
	} `json:"Files"`
}

// ExtractText uploads the PDF bytes and returns the extracted text and page
// count.
func (e *Extractor) ExtractText(fileName string, data []byte) (string, int, error) {
	if !e.Configured() {
		return "", 0, fmt.Errorf("pdf: convert api secret not configured")
	}

	request := convertRequest{
		Parameters: []convertParameter{
			{
				Name: "File",
				FileValue: &fileValue{
					Name: fileName,
					Data: base64.StdEncoding.EncodeToString(data),
				},
			},
			{Name: "StoreFile", Value: true},
		},
	}

	payloadJSON, err := json.Marshal(request)
	if err != nil {
		return "", 0, fmt.Errorf("pdf: marshal request: %w", err)
	}

	response, err := e.http.Post(convertEndpoint, strings.NewReader(string(payloadJSON)),
		httpClient.WithHeader("Authorization", "Bearer secret_"+e.secret))
	if err != nil {
		return "", 0, fmt.Errorf("pdf: convert request: %w", err)
	}

	var converted convertResponse
	if err := json.Unmarshal([]byte(response), &converted); err != nil {
		return "", 0, fmt.Errorf("pdf: unmarshal response: %w", err)
	}
	if len(converted.Files) == 0 || converted.Files[0].Url == "" {
		return "", 0, fmt.Errorf("pdf: no text file url in the response")
	}

	text, err := e.http.Get(converted.Files[0].Url)
	if err != nil {
		return "", 0, fmt.Errorf("pdf: fetch text file: %w", err)
	}

	pages := converted.Files[0].PageCount
	if pages == 0 {
		pages = 1
	}

	return text, pages, nil
}
