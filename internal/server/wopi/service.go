// Package wopi implements the host side of the Web Application Open Platform
// Interface: file metadata, whole-file read and whole-file write.
package wopi

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/dochost/internal/logging"
	"github.com/dmitrijs2005/dochost/internal/server/models"
	"github.com/dmitrijs2005/dochost/internal/server/storage"
)

// Options holds the CheckFileInfo values that do not come from storage.
type Options struct {
	UserFriendlyName  string
	PostMessageOrigin string
}

type Service struct {
	store  storage.Store
	opts   Options
	logger logging.Logger
}

func NewService(store storage.Store, opts Options, l logging.Logger) *Service {
	return &Service{
		store:  store,
		opts:   opts,
		logger: l.With("module", "wopi"),
	}
}

// CheckFileInfo reports metadata for fileID. Every user may write.
func (s *Service) CheckFileInfo(ctx context.Context, fileID string) (*models.CheckFileInfo, error) {
	info, err := s.store.Stat(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("check file info: %w", err)
	}

	return &models.CheckFileInfo{
		BaseFileName:            info.ID,
		Size:                    info.Size,
		Version:                 info.Version(),
		UserCanWrite:            true,
		UserCanNotWriteRelative: false,
		UserFriendlyName:        s.opts.UserFriendlyName,
		PostMessageOrigin:       s.opts.PostMessageOrigin,
	}, nil
}

func (s *Service) GetFile(ctx context.Context, fileID string) ([]byte, error) {
	data, err := s.store.Get(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}
	return data, nil
}

// PutFile replaces the whole content of fileID, creating it if needed.
// The caller's Version is not checked, so concurrent editors overwrite each
// other (last write wins).
func (s *Service) PutFile(ctx context.Context, fileID string, data []byte) error {
	if err := s.store.Put(ctx, fileID, data); err != nil {
		return fmt.Errorf("put file: %w", err)
	}
	s.logger.Info(ctx, "file stored", "fileId", fileID, "size", len(data))
	return nil
}
