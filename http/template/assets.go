package template

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/xy-planning-network/switchback"
)

// AssetURI names a template function, "assetURI", linking to files in assets served under prefix.
//
// Outside development, links carry a "v" query param derived from the file's contents
// so browsers refetch an asset whenever it changes. Hashes are computed once per file.
// Files missing from assets are linked unversioned.
func AssetURI(env switchback.Environment, prefix string, assets fs.FS) (string, func(string) string) {
	prefix = "/" + strings.Trim(prefix, "/") + "/"
	var versions sync.Map

	version := func(name string) string {
		if v, ok := versions.Load(name); ok {
			return v.(string)
		}

		b, err := fs.ReadFile(assets, name)
		if err != nil {
			return ""
		}

		sum := sha256.Sum256(b)
		v := hex.EncodeToString(sum[:4])
		versions.Store(name, v)
		return v
	}

	return "assetURI", func(name string) string {
		name = strings.TrimPrefix(path.Clean("/"+name), "/")
		uri := prefix + name
		if assets == nil || env.IsDevelopment() {
			return uri
		}

		if v := version(name); v != "" {
			uri += "?v=" + v
		}

		return uri
	}
}
