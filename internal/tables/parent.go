package tables

import (
	"fmt"

	"iismap/internal/common"
)

// ParentKind discriminates the two parents a site-level setting can attach to.
type ParentKind int

const (
	ParentWebVirtualDir ParentKind = 1
	ParentWebSite       ParentKind = 2
)

// Table returns the table a ParentRef of this kind points into.
func (k ParentKind) Table() string {
	switch k {
	case ParentWebVirtualDir:
		return TableWebVirtualDir
	case ParentWebSite:
		return TableWebSite
	default:
		return ""
	}
}

// Element returns the XML element name of the parent.
func (k ParentKind) Element() string {
	switch k {
	case ParentWebVirtualDir:
		return "WebVirtualDir"
	case ParentWebSite:
		return "WebSite"
	default:
		return ""
	}
}

// String returns a human-readable kind.
func (k ParentKind) String() string {
	switch k {
	case ParentWebVirtualDir:
		return "virtual directory"
	case ParentWebSite:
		return "web site"
	default:
		return common.UnknownStr
	}
}

// IsValid reports whether k is a known kind.
func (k ParentKind) IsValid() bool {
	return k == ParentWebVirtualDir || k == ParentWebSite
}

// ParentRef points at either a web site or a virtual directory.
type ParentRef struct {
	Kind ParentKind
	ID   string
}

// WebSiteParent returns a reference to site id.
func WebSiteParent(id string) ParentRef {
	return ParentRef{Kind: ParentWebSite, ID: id}
}

// VirtualDirParent returns a reference to virtual directory id.
func VirtualDirParent(id string) ParentRef {
	return ParentRef{Kind: ParentWebVirtualDir, ID: id}
}

func (p ParentRef) String() string {
	return fmt.Sprintf("%s %q", p.Kind, p.ID)
}
