package models

import (
	"github.com/volatiletech/null/v8"
)

type MimeType string

const (
	MimePDF  MimeType = "application/pdf"
	MimeJPEG MimeType = "image/jpeg"
	MimePNG  MimeType = "image/png"
	MimeODS  MimeType = "application/vnd.oasis.opendocument.spreadsheet"
	MimeXLS  MimeType = "application/vnd.ms-excel"
	MimeXLSX MimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimeDOC  MimeType = "application/msword"
	MimeODT  MimeType = "application/vnd.oasis.opendocument.text"
	MimeDOCX MimeType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	Mime7Z   MimeType = "application/x-7z-compressed"
	MimeBZ2  MimeType = "application/x-bzip2"
	MimeRAR  MimeType = "application/x-rar-compressed"
	MimeTAR  MimeType = "application/x-tar"
	MimeZIP  MimeType = "application/zip"
)

type DocumentProcessType string

const (
	ProcessCharterAssociation            DocumentProcessType = "CHARTER_ASSOCIATION"
	ProcessCharterAssociationInstitution DocumentProcessType = "CHARTER_ASSOCIATION_INSTITUTION"
	ProcessCharterProjectCommission      DocumentProcessType = "CHARTER_PROJECT_COMMISSION"
	ProcessDocumentAssociation           DocumentProcessType = "DOCUMENT_ASSOCIATION"
	ProcessDocumentUser                  DocumentProcessType = "DOCUMENT_USER"
	ProcessDocumentProject               DocumentProcessType = "DOCUMENT_PROJECT"
	ProcessDocumentProjectReview         DocumentProcessType = "DOCUMENT_PROJECT_REVIEW"
	ProcessDocumentProcessing            DocumentProcessType = "DOCUMENT_PROCESSING"
)

type DocumentUploadStatus string

const (
	UploadRejected   DocumentUploadStatus = "DOCUMENT_REJECTED"
	UploadProcessing DocumentUploadStatus = "DOCUMENT_PROCESSING"
	UploadValidated  DocumentUploadStatus = "DOCUMENT_VALIDATED"
)

// Document describes a required file: accepted formats, expiration and template.
type Document struct {
	ID                   int                 `json:"id"`
	Name                 string              `json:"name"`
	Acronym              string              `json:"acronym"`
	Description          string              `json:"description"`
	Contact              string              `json:"contact"`
	IsMultiple           bool                `json:"isMultiple"`
	IsRequiredInProcess  bool                `json:"isRequiredInProcess"`
	DaysBeforeExpiration string              `json:"daysBeforeExpiration"`
	PathTemplate         null.String         `json:"pathTemplate"`
	MimeTypes            []MimeType          `json:"mimeTypes"`
	ProcessType          DocumentProcessType `json:"processType"`
	Institution          null.Int            `json:"institution"`
	Commission           null.Int            `json:"commission"`
}

// Accepts reports whether mt is one of the document's formats.
func (d Document) Accepts(mt string) bool {
	for _, m := range d.MimeTypes {
		if string(m) == mt {
			return true
		}
	}
	return false
}

// DocumentUpload is a file uploaded against a Document.
type DocumentUpload struct {
	ID                   int                  `json:"id,omitempty"`
	UploadDate           string               `json:"uploadDate,omitempty"`
	PathFile             string               `json:"pathFile"`
	Size                 int64                `json:"size"`
	DocumentUploadStatus DocumentUploadStatus `json:"documentUploadStatus,omitempty"`
	Document             int                  `json:"document"`
	User                 null.Int             `json:"user"`
	Association          null.Int             `json:"association"`
	Project              null.Int             `json:"project"`
	Name                 string               `json:"name,omitempty"`
}

// ProcessDocument is a document required by a process together with the
// local files chosen for it.
type ProcessDocument struct {
	ID                   int                  `json:"id,omitempty"`
	Document             int                  `json:"document"`
	UploadDate           string               `json:"uploadDate,omitempty"`
	DocumentUploadStatus DocumentUploadStatus `json:"documentUploadStatus,omitempty"`
	Description          string               `json:"description"`
	IsMultiple           bool                 `json:"isMultiple"`
	IsRequiredInProcess  bool                 `json:"isRequiredInProcess"`
	MimeTypes            []MimeType           `json:"mimeTypes"`
	Name                 string               `json:"name"`
	PathTemplate         null.String          `json:"pathTemplate"`
	Files                []string             `json:"-"`
}

// UploadTarget says who an upload belongs to. Exactly one id is expected.
type UploadTarget struct {
	User        null.Int
	Association null.Int
	Project     null.Int
}
