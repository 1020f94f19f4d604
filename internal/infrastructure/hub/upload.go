package hub

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/bubcass/oireachtas-archive/internal/ports"
)

const preuploadSampleSize = 512

type preuploadRequest struct {
	Files []preuploadFile `json:"files"`
}

type preuploadFile struct {
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	Sample string `json:"sample"`
}

type preuploadResponse struct {
	Files []preuploadMode `json:"files"`
}

type preuploadMode struct {
	Path       string `json:"path"`
	UploadMode string `json:"uploadMode"`
}

type commitOp struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type commitHeader struct {
	Summary string `json:"summary"`
}

type commitInlineFile struct {
	Path     string `json:"path"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

type commitLFSFile struct {
	Path string `json:"path"`
	Algo string `json:"algo"`
	Oid  string `json:"oid"`
	Size int64  `json:"size"`
}

type lfsBatchRequest struct {
	Operation string      `json:"operation"`
	Transfers []string    `json:"transfers"`
	Objects   []lfsObject `json:"objects"`
	HashAlgo  string      `json:"hash_algo"`
}

type lfsObject struct {
	Oid  string `json:"oid"`
	Size int64  `json:"size"`
}

type lfsBatchResponse struct {
	Objects []struct {
		Oid     string `json:"oid"`
		Size    int64  `json:"size"`
		Actions struct {
			Upload *struct {
				Href   string            `json:"href"`
				Header map[string]string `json:"header"`
			} `json:"upload"`
		} `json:"actions"`
	} `json:"objects"`
}

// UploadFolder pushes the staged files to the configured branch as a single
// commit. Small files travel inline in the commit payload; files the hub
// flags for LFS are pushed to LFS storage first. Per-file work runs on a
// pool bounded by the configured worker count.
func (c *Client) UploadFolder(ctx context.Context, files []ports.UploadFile) error {
	if len(files) == 0 {
		return nil
	}

	modes, err := c.preupload(ctx, files)
	if err != nil {
		return err
	}

	ops := make([]commitOp, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			content, err := readFile(file)
			if err != nil {
				return err
			}

			if modes[file.Path] == "lfs" {
				op, err := c.uploadLFS(gctx, file.Path, content)
				if err != nil {
					return err
				}
				ops[i] = op
				return nil
			}

			ops[i] = commitOp{
				Key: "file",
				Value: commitInlineFile{
					Path:     file.Path,
					Content:  base64.StdEncoding.EncodeToString(content),
					Encoding: "base64",
				},
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return c.commit(ctx, ops)
}

// preupload asks the hub which files must go through LFS.
func (c *Client) preupload(ctx context.Context, files []ports.UploadFile) (map[string]string, error) {
	req := preuploadRequest{Files: make([]preuploadFile, 0, len(files))}
	for _, file := range files {
		sample, err := readHead(file, preuploadSampleSize)
		if err != nil {
			return nil, err
		}
		req.Files = append(req.Files, preuploadFile{
			Path:   file.Path,
			Size:   file.Size,
			Sample: base64.StdEncoding.EncodeToString(sample),
		})
	}

	var resp preuploadResponse
	res, err := c.api.R().
		SetContext(ctx).
		SetHeader("content-type", "application/json").
		SetBody(req).
		SetResult(&resp).
		Post(fmt.Sprintf("/api/datasets/%s/preupload/%s", c.dataset, c.branch))
	if err != nil {
		return nil, fmt.Errorf("preupload: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("preupload: hub returned %s", res.Status())
	}

	modes := make(map[string]string, len(resp.Files))
	for _, file := range resp.Files {
		modes[file.Path] = file.UploadMode
	}
	return modes, nil
}

// uploadLFS pushes one file's content to LFS storage and returns the commit
// operation referencing it. A batch response without an upload action means
// the object already exists remotely and only the pointer is committed.
func (c *Client) uploadLFS(ctx context.Context, path string, content []byte) (commitOp, error) {
	sum := sha256.Sum256(content)
	oid := hex.EncodeToString(sum[:])
	size := int64(len(content))

	var batch lfsBatchResponse
	res, err := c.api.R().
		SetContext(ctx).
		SetHeader("accept", "application/vnd.git-lfs+json").
		SetHeader("content-type", "application/vnd.git-lfs+json").
		SetBody(lfsBatchRequest{
			Operation: "upload",
			Transfers: []string{"basic"},
			Objects:   []lfsObject{{Oid: oid, Size: size}},
			HashAlgo:  "sha256",
		}).
		SetResult(&batch).
		Post(fmt.Sprintf("%s/datasets/%s.git/info/lfs/objects/batch", c.endpoint, c.dataset))
	if err != nil {
		return commitOp{}, fmt.Errorf("lfs batch %s: %w", path, err)
	}
	if res.IsError() {
		return commitOp{}, fmt.Errorf("lfs batch %s: hub returned %s", path, res.Status())
	}
	if len(batch.Objects) == 0 {
		return commitOp{}, fmt.Errorf("lfs batch %s: empty response", path)
	}

	if action := batch.Objects[0].Actions.Upload; action != nil {
		put := c.transfer.R().SetContext(ctx).SetBody(content)
		for key, value := range action.Header {
			put.SetHeader(key, value)
		}
		putRes, err := put.Put(action.Href)
		if err != nil {
			return commitOp{}, fmt.Errorf("lfs upload %s: %w", path, err)
		}
		if putRes.IsError() {
			return commitOp{}, fmt.Errorf("lfs upload %s: storage returned %s", path, putRes.Status())
		}
	}

	return commitOp{
		Key:   "lfsFile",
		Value: commitLFSFile{Path: path, Algo: "sha256", Oid: oid, Size: size},
	}, nil
}

// commit posts the NDJSON commit payload: one header line, one line per file.
func (c *Client) commit(ctx context.Context, ops []commitOp) error {
	var payload bytes.Buffer

	lines := append(
		[]commitOp{{Key: "header", Value: commitHeader{Summary: "Upload debate corpus"}}},
		ops...,
	)
	for _, line := range lines {
		encoded, err := json.Marshal(line)
		if err != nil {
			return fmt.Errorf("encode commit line: %w", err)
		}
		payload.Write(encoded)
		payload.WriteByte('\n')
	}

	res, err := c.api.R().
		SetContext(ctx).
		SetHeader("content-type", "application/x-ndjson").
		SetBody(payload.String()).
		Post(fmt.Sprintf("/api/datasets/%s/commit/%s", c.dataset, c.branch))
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	if res.IsError() {
		return fmt.Errorf("commit: hub returned %s", res.Status())
	}
	return nil
}

func readFile(file ports.UploadFile) ([]byte, error) {
	reader, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", file.Path, err)
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file.Path, err)
	}
	return content, nil
}

func readHead(file ports.UploadFile, n int64) ([]byte, error) {
	reader, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", file.Path, err)
	}
	defer reader.Close()

	head, err := io.ReadAll(io.LimitReader(reader, n))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file.Path, err)
	}
	return head, nil
}
