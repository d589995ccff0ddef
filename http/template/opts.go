package template

import "io/fs"

// A ParserOptFn configures a *Parse in NewParser.
type ParserOptFn func(*Parse)

// WithFn makes fn callable from templates as name.
func WithFn(name string, fn any) ParserOptFn {
	return func(p *Parse) { p.AddFn(name, fn) }
}

// WithFS sets the filesystem templates are read from before falling back to embedded ones.
func WithFS(fsys fs.FS) ParserOptFn {
	return func(p *Parse) { p.fs = fsys }
}

// A ViewsOptFn configures a *Views in NewViews.
type ViewsOptFn func(*Views)

// WithCache keeps parsed views in memory after their first lookup.
func WithCache() ViewsOptFn {
	return func(v *Views) {
		v.cache = make(map[string]View)
	}
}

// WithDir sets the directory view names are resolved in.
func WithDir(dir string) ViewsOptFn {
	return func(v *Views) {
		v.dir = dir
	}
}

// WithExt sets the file extension appended to view names.
// The default is ".tmpl".
func WithExt(ext string) ViewsOptFn {
	return func(v *Views) {
		v.ext = ext
	}
}

// WithLayouts sets templates every view is rendered within.
// The first layout is the template executed.
func WithLayouts(fps ...string) ViewsOptFn {
	return func(v *Views) {
		v.layouts = fps
	}
}
