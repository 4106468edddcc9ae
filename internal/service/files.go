package service

import (
	"context"
	"errors"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/storage"
)

// pendingFile is an upload that passed its checks and has a key, but is
// not stored yet.
type pendingFile struct {
	key  string
	file storage.Prepared
}

// prepareUpload runs check on u and reports failures as a field error.
// A nil upload yields a nil pendingFile.
func prepareUpload(field string, u *storage.Upload, check func(storage.Upload) (storage.Prepared, error), key func(ext string) string) (*pendingFile, error) {
	if u == nil {
		return nil, nil
	}
	p, err := check(*u)
	if err != nil {
		if errors.Is(err, storage.ErrFileTooLarge) || errors.Is(err, storage.ErrFileType) ||
			errors.Is(err, storage.ErrEmptyFile) || errors.Is(err, storage.ErrImageMalformed) ||
			errors.Is(err, storage.ErrImageTooLarge) {
			return nil, invalid(field, err.Error())
		}
		return nil, err
	}
	return &pendingFile{key: key(p.Ext), file: p}, nil
}

// storeAll saves files in order. On failure the ones already written are
// removed again.
func storeAll(ctx context.Context, files storage.Storage, pending ...*pendingFile) error {
	var done []string
	for _, p := range pending {
		if p == nil {
			continue
		}
		if err := files.Save(ctx, p.key, p.file.Reader(), p.file.ContentType); err != nil {
			removeAll(ctx, files, done...)
			return err
		}
		done = append(done, p.key)
	}
	return nil
}

func removeAll(ctx context.Context, files storage.Storage, keys ...string) {
	for _, k := range keys {
		if k != "" {
			_ = files.Delete(ctx, k)
		}
	}
}

func keysOf(pending ...*pendingFile) []string {
	var out []string
	for _, p := range pending {
		if p != nil {
			out = append(out, p.key)
		}
	}
	return out
}

func fileURL(files storage.Storage, key string) string {
	if key == "" || files == nil {
		return ""
	}
	return files.URL(key)
}
