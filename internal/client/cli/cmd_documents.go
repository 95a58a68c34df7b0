package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/plana/internal/client/models"
	"github.com/dmitrijs2005/plana/internal/client/services"
	"github.com/dmitrijs2005/plana/internal/common"
	"github.com/volatiletech/null/v8"
)

// now is a test seam for expiration checks.
var now = time.Now

// Documents lists the documents of the given process types, then the
// signed-in user's uploads with their expiration state.
func (a *App) Documents(ctx context.Context, args []string) error {
	types := make([]models.DocumentProcessType, 0, len(args))
	for _, t := range args {
		types = append(types, models.DocumentProcessType(strings.ToUpper(t)))
	}
	if err := a.documents.GetDocuments(ctx, types...); err != nil {
		return err
	}

	rows := make([][]string, 0, len(a.documents.Documents))
	for _, d := range a.documents.Documents {
		formats := make([]string, 0, len(d.MimeTypes))
		for _, m := range d.MimeTypes {
			formats = append(formats, string(m))
		}
		rows = append(rows, []string{
			strconv.Itoa(d.ID), d.Name, string(d.ProcessType),
			orDash(strings.Join(formats, ",")), yesNo(d.PathTemplate.Valid && d.PathTemplate.String != ""),
		})
	}
	if err := table(a.out, []string{"ID", "NAME", "PROCESS", "FORMATS", "TEMPLATE"}, rows); err != nil {
		return err
	}

	target := models.UploadTarget{User: null.IntFrom(a.store.User.User.ID)}
	if err := a.documents.GetDocumentUploads(ctx, target); err != nil {
		return err
	}
	if len(a.documents.DocumentUploads) == 0 {
		return nil
	}
	fmt.Fprintln(a.out)
	return a.printUploads()
}

func (a *App) printUploads() error {
	docs := make(map[int]models.Document, len(a.documents.Documents))
	for _, d := range a.documents.Documents {
		docs[d.ID] = d
	}
	t := now()
	rows := make([][]string, 0, len(a.documents.DocumentUploads))
	for _, u := range a.documents.DocumentUploads {
		doc := docs[u.Document]
		rows = append(rows, []string{
			strconv.Itoa(u.ID), orDash(doc.Name), orDash(u.Name),
			orDash(string(u.DocumentUploadStatus)), yesNo(services.IsExpired(u, doc, t)),
		})
	}
	return table(a.out, []string{"UPLOAD", "DOCUMENT", "FILE", "STATUS", "EXPIRED"}, rows)
}

func (a *App) document(ctx context.Context, id int) (models.Document, error) {
	if len(a.documents.Documents) == 0 {
		if err := a.documents.GetDocuments(ctx); err != nil {
			return models.Document{}, err
		}
	}
	for _, d := range a.documents.Documents {
		if d.ID == id {
			return d, nil
		}
	}
	return models.Document{}, fmt.Errorf("document %d: %w", id, common.ErrorNotFound)
}

// UploadDocument sends file for the document. Uploads belong to the
// signed-in user unless association= or project= is given.
func (a *App) UploadDocument(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return a.usage("document-upload")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if _, err := a.document(ctx, id); err != nil {
		return err
	}

	kv, _ := parseKeyValues(args[2:])
	var target models.UploadTarget
	switch {
	case kv["association"] != "":
		aid, err := parseID(kv["association"])
		if err != nil {
			return err
		}
		target.Association = null.IntFrom(aid)
	case kv["project"] != "":
		pid, err := parseID(kv["project"])
		if err != nil {
			return err
		}
		target.Project = null.IntFrom(pid)
	default:
		target.User = null.IntFrom(a.store.User.User.ID)
	}

	a.documents.InitProcessDocuments()
	if err := a.documents.AttachFile(id, args[1]); err != nil {
		return err
	}
	if err := a.documents.UploadDocuments(ctx, target); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s uploaded\n", args[1])
	return nil
}

func (a *App) DeleteDocumentUpload(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("document-delete")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.documents.DeleteDocumentUpload(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Upload %d deleted\n", id)
	return nil
}

func (a *App) Template(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("template")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	doc, err := a.document(ctx, id)
	if err != nil {
		return err
	}
	path, err := a.documents.DownloadTemplate(ctx, doc)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Template saved to %s\n", path)
	return nil
}
