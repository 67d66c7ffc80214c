package siescene

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
)

var ErrUnsupportedFormat = errors.New("unsupported model format")

// maxModelBytes bounds remote downloads.
const maxModelBytes = 64 << 20

// ModelLoader fetches and parses model files from local paths, file://
// URLs or http(s):// URLs.
type ModelLoader struct {
	Client  *http.Client
	Reverse int
}

func NewModelLoader() *ModelLoader {
	return &ModelLoader{Client: http.DefaultClient}
}

// Load runs LoadModel on a new goroutine. Exactly one of onLoad and
// onError is called, always through post, so callbacks can be delivered
// on the caller's own thread.
func (l *ModelLoader) Load(ctx context.Context, rawURL string, post func(func()), onLoad func(*Object3D), onError func(error)) {
	go func() {
		obj, err := l.LoadModel(ctx, rawURL)
		post(func() {
			if err != nil {
				onError(err)
				return
			}
			onLoad(obj)
		})
	}()
}

// LoadModel fetches and parses a model synchronously.
func (l *ModelLoader) LoadModel(ctx context.Context, rawURL string) (*Object3D, error) {
	src, err := parseSource(rawURL)
	if err != nil {
		return nil, err
	}

	var geo *Geometry
	switch ext := strings.ToLower(path.Ext(src.name)); ext {
	case ".glb", ".gltf":
		geo, err = l.loadGLTF(ctx, src)
	case ".ply", ".dxf":
		var data []byte
		data, err = l.fetch(ctx, src)
		if err != nil {
			break
		}
		if ext == ".ply" {
			geo, err = LoadGeometryFromPLYReader(bytes.NewReader(data), l.Reverse)
		} else {
			geo, err = LoadGeometryFromDXFReader(bytes.NewReader(data), l.Reverse)
		}
	default:
		return nil, fmt.Errorf("loading %s: %w %q", rawURL, ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", rawURL, err)
	}

	obj := NewMesh(geo, NewMeshStandardMaterial(0xFFFFFF))
	obj.Name = strings.TrimSuffix(path.Base(src.name), path.Ext(src.name))
	log.Printf("Loaded model %s: %d vertices, %d faces", obj.Name, len(geo.Vertices), len(geo.Faces))
	return obj, nil
}

type modelSource struct {
	name   string // path used for the extension and the object name
	local  string // file system path, empty for remote sources
	remote string
}

func parseSource(rawURL string) (modelSource, error) {
	if rawURL == "" {
		return modelSource{}, errors.New("empty model url")
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// plain path, including windows drive letters
		return modelSource{name: filepath.ToSlash(rawURL), local: rawURL}, nil
	}
	switch u.Scheme {
	case "file":
		p := u.Path
		if u.Host != "" && u.Host != "localhost" {
			p = u.Host + p
		}
		return modelSource{name: p, local: filepath.FromSlash(p)}, nil
	case "http", "https":
		return modelSource{name: u.Path, remote: rawURL}, nil
	}
	return modelSource{}, fmt.Errorf("unsupported url scheme %q", u.Scheme)
}

func (l *ModelLoader) loadGLTF(ctx context.Context, src modelSource) (*Geometry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var doc *gltf.Document
	if src.local != "" {
		d, err := gltf.Open(src.local)
		if err != nil {
			return nil, err
		}
		doc = d
	} else {
		data, err := l.fetch(ctx, src)
		if err != nil {
			return nil, err
		}
		doc = new(gltf.Document)
		if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
			return nil, err
		}
	}
	return GeometryFromGLTF(doc)
}

func (l *ModelLoader) fetch(ctx context.Context, src modelSource) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if src.local != "" {
		return os.ReadFile(src.local)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.remote, nil)
	if err != nil {
		return nil, err
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxModelBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxModelBytes {
		return nil, fmt.Errorf("model larger than %d bytes", maxModelBytes)
	}
	return data, nil
}
