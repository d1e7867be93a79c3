// Package callback processes status notifications sent by the external
// editing server, saving the edited document when it reports one ready.
package callback

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/dmitrijs2005/dochost/internal/common"
	"github.com/dmitrijs2005/dochost/internal/logging"
	"github.com/dmitrijs2005/dochost/internal/netx"
	"github.com/dmitrijs2005/dochost/internal/server/storage"
)

// Event is one callback notification. It is not persisted.
type Event struct {
	// Key is the document key the editor was opened with.
	Key string
	// Status is the raw status code from the request body.
	Status int
	// URL points at the edited bytes; set when the document is ready to save.
	URL string
	// FileType is the stored extension, "docx" when empty.
	FileType string
	// Error is the editor's error text for error statuses.
	Error string
	// Token is the already verified bearer token, forwarded on download.
	Token string
}

// Result describes a successfully handled event.
type Result struct {
	State State
	// FileID is set when a document was written.
	FileID  string
	Size    int
	Message string
}

// Options tunes the outbound download.
type Options struct {
	FetchTimeout     time.Duration
	MaxDownloadBytes int64
}

type Ingestor struct {
	store  storage.Store
	client *http.Client
	opts   Options
	logger logging.Logger
}

func NewIngestor(store storage.Store, client *http.Client, opts Options, l logging.Logger) *Ingestor {
	if client == nil {
		client = &http.Client{}
	}
	return &Ingestor{
		store:  store,
		client: client,
		opts:   opts,
		logger: l.With("module", "callback"),
	}
}

var fileTypeRe = regexp.MustCompile(`^[A-Za-z0-9]{1,16}$`)

// FileID is the storage name of a saved document: "<key>.<fileType>".
func FileID(key, fileType string) string {
	if fileType == "" {
		fileType = common.DefaultFileType
	}
	return key + "." + fileType
}

// Process handles a single event. It writes to storage at most once and only
// for ReadyToSave. Repeated saves for the same key are not deduplicated; the
// last one to finish wins.
func (i *Ingestor) Process(ctx context.Context, ev Event) (Result, error) {
	if ev.Key == "" {
		return Result{}, fmt.Errorf("%w: missing document key", common.ErrValidation)
	}

	state, err := StateOf(ev.Status)
	if err != nil {
		return Result{}, err
	}

	log := i.logger.With("key", ev.Key, "status", ev.Status, "state", state.String())

	switch state {
	case NoOp, Editing:
		log.Info(ctx, "document status received")
		return Result{State: state}, nil

	case Error:
		msg := ev.Error
		if msg == "" {
			msg = "Unknown error"
		}
		log.Error(ctx, "document server reported an error", "error", ev.Error)
		return Result{}, fmt.Errorf("%w: %s", common.ErrEditorReported, msg)

	case ReadyToSave:
		return i.save(ctx, log, ev)
	}

	return Result{}, fmt.Errorf("%w: %d", common.ErrUnknownStatus, ev.Status)
}

func (i *Ingestor) save(ctx context.Context, log logging.Logger, ev Event) (Result, error) {
	if ev.URL == "" {
		return Result{}, common.ErrMissingURL
	}

	fileType := ev.FileType
	if fileType == "" {
		fileType = common.DefaultFileType
	}
	if !fileTypeRe.MatchString(fileType) {
		return Result{}, fmt.Errorf("%w: bad file type %q", common.ErrValidation, fileType)
	}

	fileID := FileID(ev.Key, fileType)
	if _, err := storage.SanitizeID(fileID); err != nil {
		return Result{}, err
	}

	fetchCtx := ctx
	if i.opts.FetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, i.opts.FetchTimeout)
		defer cancel()
	}

	log.Info(ctx, "downloading document", "url", ev.URL)

	data, err := netx.Fetch(fetchCtx, i.client, ev.URL, netx.FetchOptions{
		BearerToken: ev.Token,
		MaxBytes:    i.opts.MaxDownloadBytes,
	})
	if err != nil {
		log.Error(ctx, "document download failed", "error", err)
		return Result{}, err
	}

	if err := i.store.Put(ctx, fileID, data); err != nil {
		log.Error(ctx, "document write failed", "fileId", fileID, "error", err)
		return Result{}, fmt.Errorf("save %s: %w", fileID, err)
	}

	log.Info(ctx, "document saved", "fileId", fileID, "size", len(data))

	return Result{
		State:   ReadyToSave,
		FileID:  fileID,
		Size:    len(data),
		Message: "Document saved successfully",
	}, nil
}
