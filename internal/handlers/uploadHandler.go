package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	s3 "quizify/aws"
	models "quizify/internal/models"
	"quizify/internal/pdf"
	httpClient "quizify/internal/utility/http"

	"github.com/aws/aws-sdk-go/aws/session"
)

var fileNameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

func teacherOnly(w http.ResponseWriter, r *http.Request, action string) bool {
	user, ok := currentUser(r)
	if !ok {
		httpClient.RespondError(w, http.StatusUnauthorized, "Unauthorized", fmt.Errorf("no user in context"))
		return false
	}
	if user.Role != models.RoleTeacher {
		httpClient.RespondError(w, http.StatusForbidden, "Only teachers can "+action, nil)
		return false
	}
	return true
}

type UploadResponse struct {
	URL    string `json:"url"`
	FileID string `json:"fileId"`
	Name   string `json:"name"`
}

// UploadPDF returns the handler that stores an uploaded source document in
// S3 and responds with its retrievable URL.
func UploadPDF(sess *session.Session, awsConfig s3.AWSConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !teacherOnly(w, r, "upload PDFs") {
			return
		}

		err := r.ParseMultipartForm(10 << 20)
		if err != nil {
			httpClient.RespondError(w, http.StatusBadRequest, "Unable to parse form", err)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			httpClient.RespondError(w, http.StatusBadRequest, "PDF file is required", err)
			return
		}
		defer file.Close()

		if !strings.Contains(header.Header.Get("Content-Type"), "pdf") {
			httpClient.RespondError(w, http.StatusBadRequest, "File must be a PDF", nil)
			return
		}

		hash := make([]byte, 8)
		if _, err := rand.Read(hash); err != nil {
			httpClient.RespondError(w, http.StatusInternalServerError, "Error uploading file", err)
			return
		}
		fileID := hex.EncodeToString(hash)
		fileName := fileID + "-" + fileNameSanitizer.ReplaceAllString(header.Filename, "")

		url, err := s3.UploadObject(awsConfig.Bucket, "quiz-pdfs/"+fileName, sess, awsConfig, file)
		if err != nil {
			httpClient.RespondError(w, http.StatusInternalServerError, "Error uploading file to cloud storage", err)
			return
		}

		httpClient.RespondSuccess(w, UploadResponse{
			URL:    url,
			FileID: fileID,
			Name:   header.Filename,
		})
	}
}

type ExtractResponse struct {
	Text  string `json:"text"`
	Pages int    `json:"pages"`
}

// ExtractText returns the handler that converts an uploaded PDF to plain
// text. Extraction failures produce the fallback message rather than an
// error so the teacher can paste text manually.
func ExtractText(extractor *pdf.Extractor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !teacherOnly(w, r, "extract text") {
			return
		}

		err := r.ParseMultipartForm(10 << 20)
		if err != nil {
			httpClient.RespondError(w, http.StatusBadRequest, "Unable to parse form", err)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			httpClient.RespondError(w, http.StatusBadRequest, "No file provided", err)
			return
		}
		defer file.Close()

		if !strings.Contains(header.Header.Get("Content-Type"), "pdf") {
			httpClient.RespondError(w, http.StatusBadRequest, "File must be a PDF", nil)
			return
		}

		data, err := io.ReadAll(file)
		if err != nil {
			httpClient.RespondError(w, http.StatusInternalServerError, "Failed to read file", err)
			return
		}

		text, pages, err := extractor.ExtractText(header.Filename, data)
		if err != nil {
			httpClient.RespondSuccess(w, ExtractResponse{
				Text:  fmt.Sprintf("Unable to extract text from %s. Please try again or manually enter the text.", header.Filename),
				Pages: 1,
			})
			return
		}

		httpClient.RespondSuccess(w, ExtractResponse{Text: text, Pages: pages})
	}
}
