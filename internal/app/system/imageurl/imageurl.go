// internal/app/system/imageurl/imageurl.go

// Package imageurl rewrites sharing-page URLs that admins paste into the
// gallery form into direct raw-content URLs that render inside an <img>.
package imageurl

import "strings"

// Normalize rewrites known hosting-page URLs to raw-content form.
// Unrecognized URLs pass through untouched.
//
//	Dropbox:      www.dropbox.com/...?dl=0 → dl.dropboxusercontent.com/...
//	Google Drive: drive.google.com/file/d/<id>/view → drive.google.com/uc?export=view&id=<id>
func Normalize(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}

	if strings.Contains(u, "www.dropbox.com") {
		u = strings.Replace(u, "www.dropbox.com", "dl.dropboxusercontent.com", 1)
		u = strings.Replace(u, "?dl=0", "", 1)
		u = strings.Replace(u, "&dl=0", "", 1)
		return u
	}

	if strings.Contains(u, "drive.google.com/file/d/") {
		rest := u[strings.Index(u, "/file/d/")+len("/file/d/"):]
		if i := strings.IndexAny(rest, "/?"); i >= 0 {
			rest = rest[:i]
		}
		if rest != "" {
			return "https://drive.google.com/uc?export=view&id=" + rest
		}
	}

	return u
}
