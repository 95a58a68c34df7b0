package services

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/plana/internal/client/client"
	"github.com/dmitrijs2005/plana/internal/client/models"
	"github.com/dmitrijs2005/plana/internal/client/storage"
	"github.com/dmitrijs2005/plana/internal/common"
	"github.com/dmitrijs2005/plana/internal/filex"
	"github.com/dmitrijs2005/plana/internal/logging"
	"github.com/gabriel-vasile/mimetype"
)

const DocumentUploadsPath = "/documents/uploads"

var readFile = os.ReadFile

// DocumentService lists required documents and uploads files against them.
type DocumentService struct {
	api          *client.API
	fetcher      storage.TemplateFetcher
	templatesDir string
	logger       logging.Logger

	Documents        []models.Document
	DocumentUploads  []models.DocumentUpload
	ProcessDocuments []models.ProcessDocument
}

func NewDocumentService(api *client.API, fetcher storage.TemplateFetcher, templatesDir string, logger logging.Logger) *DocumentService {
	return &DocumentService{api: api, fetcher: fetcher, templatesDir: templatesDir, logger: logging.OrNop(logger)}
}

// GetDocuments loads the documents of the given processes, or all of them.
func (s *DocumentService) GetDocuments(ctx context.Context, processTypes ...models.DocumentProcessType) error {
	p := "/documents/"
	if len(processTypes) != 0 {
		parts := make([]string, len(processTypes))
		for i, pt := range processTypes {
			parts[i] = string(pt)
		}
		p += "?process_types=" + strings.Join(parts, ",")
	}

	var docs []models.Document
	if err := s.api.Public.Get(ctx, p, &docs); err != nil {
		return err
	}
	s.Documents = docs
	return nil
}

// DocumentUploadsURL filters uploads by the first id set in target.
func DocumentUploadsURL(target models.UploadTarget) string {
	switch {
	case target.Association.Valid:
		return fmt.Sprintf("%s?association_id=%d", DocumentUploadsPath, target.Association.Int)
	case target.User.Valid:
		return fmt.Sprintf("%s?user_id=%d", DocumentUploadsPath, target.User.Int)
	case target.Project.Valid:
		return fmt.Sprintf("%s?project_id=%d", DocumentUploadsPath, target.Project.Int)
	}
	return DocumentUploadsPath
}

func (s *DocumentService) GetDocumentUploads(ctx context.Context, target models.UploadTarget) error {
	var uploads []models.DocumentUpload
	if err := s.api.Authenticated.Get(ctx, DocumentUploadsURL(target), &uploads); err != nil {
		return err
	}
	s.DocumentUploads = uploads
	return nil
}

// InitProcessDocuments turns the loaded documents into upload slots.
func (s *DocumentService) InitProcessDocuments() {
	s.ProcessDocuments = make([]models.ProcessDocument, 0, len(s.Documents))
	for _, d := range s.Documents {
		s.ProcessDocuments = append(s.ProcessDocuments, models.ProcessDocument{
			Document:            d.ID,
			Description:         d.Description,
			IsMultiple:          d.IsMultiple,
			IsRequiredInProcess: d.IsRequiredInProcess,
			MimeTypes:           d.MimeTypes,
			Name:                d.Name,
			PathTemplate:        d.PathTemplate,
		})
	}
}

// AttachFile chooses a local file for the slot of document.
func (s *DocumentService) AttachFile(document int, file string) error {
	for i := range s.ProcessDocuments {
		pd := &s.ProcessDocuments[i]
		if pd.Document != document {
			continue
		}
		if !pd.IsMultiple {
			pd.Files = pd.Files[:0]
		}
		pd.Files = append(pd.Files, file)
		return nil
	}
	return fmt.Errorf("document %d: %w", document, common.ErrorNotFound)
}

// UploadDocuments sends every attached file for target. A file whose
// detected type the document does not accept fails the whole call before
// it is sent; earlier uploads stay.
func (s *DocumentService) UploadDocuments(ctx context.Context, target models.UploadTarget) error {
	for _, pd := range s.ProcessDocuments {
		for _, file := range pd.Files {
			if err := s.upload(ctx, pd, file, target); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *DocumentService) upload(ctx context.Context, pd models.ProcessDocument, file string, target models.UploadTarget) error {
	data, err := readFile(file)
	if err != nil {
		return err
	}

	mt := mimetype.Detect(data)
	if !acceptsMIME(pd.MimeTypes, mt) {
		return fmt.Errorf("%w: %s is %s, %q accepts %v", common.ErrValidation, filepath.Base(file), mt.String(), pd.Name, pd.MimeTypes)
	}

	fields := map[string]string{"document": strconv.Itoa(pd.Document)}
	if target.User.Valid {
		fields["user"] = strconv.Itoa(target.User.Int)
	}
	if target.Association.Valid {
		fields["association"] = strconv.Itoa(target.Association.Int)
	}
	if target.Project.Valid {
		fields["project"] = strconv.Itoa(target.Project.Int)
	}

	form := client.Multipart{
		Fields:      fields,
		FileField:   "pathFile",
		FileName:    filepath.Base(file),
		ContentType: mt.String(),
		Data:        data,
	}
	var uploaded models.DocumentUpload
	if err := s.api.Authenticated.PostMultipart(ctx, DocumentUploadsPath, form, &uploaded); err != nil {
		return err
	}
	s.DocumentUploads = append(s.DocumentUploads, uploaded)
	s.logger.Info(ctx, "document uploaded", "document", pd.Document, "file", form.FileName, "mime", form.ContentType)
	return nil
}

func acceptsMIME(allowed []models.MimeType, mt *mimetype.MIME) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, m := range allowed {
		if mt.Is(string(m)) {
			return true
		}
	}
	return false
}

func (s *DocumentService) DeleteDocumentUpload(ctx context.Context, id int) error {
	if err := s.api.Authenticated.Delete(ctx, fmt.Sprintf("%s/%d", DocumentUploadsPath, id)); err != nil {
		return err
	}
	for i, u := range s.DocumentUploads {
		if u.ID == id {
			s.DocumentUploads = append(s.DocumentUploads[:i], s.DocumentUploads[i+1:]...)
			break
		}
	}
	return nil
}

// ExpirationDays parses daysBeforeExpiration ("365" or "365 00:00:00").
func ExpirationDays(raw string) (int, bool) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return 0, false
	}
	days, err := strconv.Atoi(fields[0])
	if err != nil || days <= 0 {
		return 0, false
	}
	return days, true
}

// IsExpired reports whether upload has outlived the validity of doc at now.
// Documents without a validity period never expire.
func IsExpired(upload models.DocumentUpload, doc models.Document, now time.Time) bool {
	days, ok := ExpirationDays(doc.DaysBeforeExpiration)
	if !ok {
		return false
	}
	uploaded, err := time.Parse(time.DateOnly, common.FormatDate(upload.UploadDate))
	if err != nil {
		return false
	}
	return now.After(uploaded.AddDate(0, 0, days))
}

// DownloadTemplate saves the template of doc into the templates directory
// and returns the written path.
func (s *DocumentService) DownloadTemplate(ctx context.Context, doc models.Document) (string, error) {
	if !doc.PathTemplate.Valid || doc.PathTemplate.String == "" {
		return "", fmt.Errorf("template of document %d: %w", doc.ID, common.ErrorNotFound)
	}
	data, err := s.fetcher.Fetch(ctx, doc.PathTemplate.String)
	if err != nil {
		return "", err
	}

	dir, err := filex.EnsureDir(s.templatesDir)
	if err != nil {
		return "", err
	}
	return filex.WriteFileAtomic(dir, path.Base(doc.PathTemplate.String), data)
}
