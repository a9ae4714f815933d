package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	apperrors "github.com/skillsenselab/diascribe/errors"
	"github.com/skillsenselab/diascribe/logger"
	"github.com/skillsenselab/diascribe/transcript"
)

// Artifacts names the stored objects for one processed audio file.
type Artifacts struct {
	// JSONPath is the storage path of the structured document.
	JSONPath string `json:"json_path"`
	// MarkdownPath is the storage path of the rendered markdown, empty
	// for failure documents.
	MarkdownPath string `json:"markdown_path,omitempty"`
}

// ArtifactStore persists transcript documents as storage objects. Each
// audio file yields <stem>.json and, on success, <stem>.md.
type ArtifactStore struct {
	client ByteClient
	prefix string
	log    *logger.Logger
}

// NewArtifactStore creates an ArtifactStore writing under the given
// prefix ("" for the storage root).
func NewArtifactStore(s Storage, prefix string, log *logger.Logger) *ArtifactStore {
	return &ArtifactStore{
		client: NewByteClient(s),
		prefix: prefix,
		log:    log.WithComponent("artifacts"),
	}
}

// Stem derives the artifact stem from an audio path: the base name with
// its extension stripped.
func Stem(audioPath string) string {
	base := filepath.Base(audioPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SaveDocument writes the structured document and its markdown rendering.
func (a *ArtifactStore) SaveDocument(ctx context.Context, doc *transcript.Document) (*Artifacts, error) {
	stem := Stem(doc.AudioFile)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, apperrors.StorageError("encode document", err)
	}

	jsonPath := a.objectPath(stem + ".json")
	if err := a.client.Upload(ctx, jsonPath, data); err != nil {
		return nil, apperrors.StorageError("save document", err)
	}

	mdPath := a.objectPath(stem + ".md")
	if err := a.client.Upload(ctx, mdPath, []byte(doc.Markdown)); err != nil {
		return nil, apperrors.StorageError("save markdown", err)
	}

	a.log.Info("artifacts saved", logger.Fields(
		logger.FieldAudioFile, doc.AudioFile,
		"json_path", jsonPath,
		"markdown_path", mdPath,
	))
	return &Artifacts{JSONPath: jsonPath, MarkdownPath: mdPath}, nil
}

// SaveFailure writes the failure document for an audio file that could
// not be processed.
func (a *ArtifactStore) SaveFailure(ctx context.Context, failure transcript.Failure) (*Artifacts, error) {
	stem := Stem(failure.AudioFile)

	data, err := json.MarshalIndent(failure, "", "  ")
	if err != nil {
		return nil, apperrors.StorageError("encode failure document", err)
	}

	jsonPath := a.objectPath(stem + ".json")
	if err := a.client.Upload(ctx, jsonPath, data); err != nil {
		return nil, apperrors.StorageError("save failure document", err)
	}

	a.log.Info("failure artifact saved", logger.Fields(
		logger.FieldAudioFile, failure.AudioFile,
		"json_path", jsonPath,
	))
	return &Artifacts{JSONPath: jsonPath}, nil
}

// Exists reports whether a stored document exists for the audio path.
func (a *ArtifactStore) Exists(ctx context.Context, audioPath string) (bool, error) {
	return a.client.Exists(ctx, a.objectPath(Stem(audioPath)+".json"))
}

// Load reads back a stored document by audio path.
func (a *ArtifactStore) Load(ctx context.Context, audioPath string) (*transcript.Document, error) {
	jsonPath := a.objectPath(Stem(audioPath) + ".json")
	data, err := a.client.Download(ctx, jsonPath)
	if err != nil {
		return nil, apperrors.StorageError("load document", err)
	}
	var doc transcript.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.StorageError("decode document", fmt.Errorf("%s: %w", jsonPath, err))
	}
	return &doc, nil
}

func (a *ArtifactStore) objectPath(name string) string {
	if a.prefix == "" {
		return name
	}
	return path.Join(a.prefix, name)
}
