// Package assets migrates inline-encoded binary assets out of a document
// before it is committed.
//
// Block configuration fields that carry binary content (media URL, media
// video thumbnail, per-item option images) may transiently hold a data URI.
// The pipeline uploads each such field to blob storage at a deterministic
// path and replaces it with the returned durable reference. A document is
// never committed with an inline asset still in it: on upload failure the
// field is cleared instead.
package assets

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/blob"
	"github.com/brunoferraric1/multiquiz-v02-sub001/internal/quiz"
)

// inlinePrefix marks an inline-encoded asset. Detection is a format-prefix
// check, never content sniffing.
const inlinePrefix = "data:"

// IsInline reports whether the field value is an inline-encoded asset.
// Durable references (https URLs, empty fields) return false, which is what
// makes migration idempotent per field.
func IsInline(value string) bool {
	return strings.HasPrefix(value, inlinePrefix)
}

// Pipeline migrates inline assets to durable blob storage.
type Pipeline struct {
	blobs blob.Store
	log   *slog.Logger
}

// New creates a pipeline uploading through blobs. A nil logger defaults to
// slog.Default.
func New(blobs blob.Store, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{blobs: blobs, log: log}
}

// HasInlineAssets reports whether any migratable field in the document
// holds an inline-encoded asset. The committer uses this to decide whether
// a brand-new document needs a skeleton record persisted before migration
// (blob authorization reads the document record to check ownership).
func HasInlineAssets(d *quiz.Document) bool {
	found := false
	walkAssetFields(d, func(_ string, _ string, field *string) {
		if IsInline(*field) {
			found = true
		}
	})
	return found
}

// Migrate returns a deep copy of the document with every inline-encoded
// asset replaced by a durable reference, plus the number of fields that
// changed. The input document is never modified.
//
// Per-field upload failures are logged and the field is cleared; they never
// fail the migration as a whole. Fields already holding durable references
// are left untouched, so running Migrate twice produces identical output
// with no re-uploads.
func (p *Pipeline) Migrate(ctx context.Context, docID string, d *quiz.Document) (*quiz.Document, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	out := d.Clone()
	changed := 0
	walkAssetFields(out, func(containerID, assetKey string, field *string) {
		if !IsInline(*field) {
			return
		}
		url, err := p.migrateField(ctx, docID, containerID, assetKey, *field)
		if err != nil {
			p.log.Warn("asset migration failed, clearing field",
				"doc", docID,
				"container", containerID,
				"asset", assetKey,
				"error", err)
			*field = ""
			changed++
			return
		}
		*field = url
		changed++
	})
	return out, changed, nil
}

// migrateField uploads one inline asset and returns its durable URL.
// The storage path is keyed by document, container, and asset so repeated
// migrations of the same field land on the same object.
func (p *Pipeline) migrateField(ctx context.Context, docID, containerID, assetKey, value string) (string, error) {
	data, ext, err := decodeDataURI(value)
	if err != nil {
		return "", err
	}
	path := fmt.Sprintf("documents/%s/%s/%s%s", docID, containerID, assetKey, ext)
	url, err := p.blobs.Upload(ctx, path, data)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", path, err)
	}
	return url, nil
}

// walkAssetFields visits every migratable string field in the document.
// containerID is the owning step or outcome; assetKey is the block id, with
// an item or role suffix where one block carries several assets.
func walkAssetFields(d *quiz.Document, visit func(containerID, assetKey string, field *string)) {
	for _, s := range d.Steps {
		walkBlocks(s.ID, s.Blocks, visit)
	}
	for _, o := range d.Outcomes {
		walkBlocks(o.ID, o.Blocks, visit)
	}
}

func walkBlocks(containerID string, blocks []*quiz.Block, visit func(containerID, assetKey string, field *string)) {
	for _, b := range blocks {
		switch cfg := b.Config.(type) {
		case *quiz.MediaConfig:
			visit(containerID, b.ID, &cfg.URL)
			visit(containerID, b.ID+"/thumbnail", &cfg.VideoThumbnail)
		case *quiz.OptionsConfig:
			for i := range cfg.Items {
				visit(containerID, b.ID+"/"+cfg.Items[i].ID, &cfg.Items[i].ImageURL)
			}
		}
	}
}

// decodeDataURI extracts the payload of a data URI and maps its media type
// to a file extension. Malformed URIs are a per-field failure, handled by
// the caller like any other.
func decodeDataURI(uri string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(uri, inlinePrefix)
	if !ok {
		return nil, "", fmt.Errorf("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", fmt.Errorf("malformed data URI: no payload")
	}

	var data []byte
	if strings.HasSuffix(meta, ";base64") {
		meta = strings.TrimSuffix(meta, ";base64")
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", fmt.Errorf("decode base64 payload: %w", err)
		}
		data = decoded
	} else {
		// Non-base64 payloads are percent-encoded (RFC 2397).
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return nil, "", fmt.Errorf("unescape payload: %w", err)
		}
		data = []byte(unescaped)
	}

	mediaType, _, _ := strings.Cut(meta, ";")
	return data, extensionFor(mediaType), nil
}

func extensionFor(mediaType string) string {
	switch mediaType {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	case "video/mp4":
		return ".mp4"
	default:
		return ""
	}
}
