package book

import (
	"errors"
	"path"
	"strings"
)

// ErrEmptyName is returned for entries whose names carry no tokens at all.
var ErrEmptyName = errors.New("entry name has no ordering token")

// Name is what naming convention "<ordering-token>[_<word>]*" gives us.
type Name struct {
	// Token is used for ordering only, it is never displayed.
	Token string
	// Title is the rest of the name, words separated by single spaces.
	Title string
}

// ParseName splits entry base name (without extension) into ordering token
// and title. Underscores are treated as spaces.
func ParseName(name string) (Name, error) {
	tokens := strings.Fields(strings.ReplaceAll(name, "_", " "))
	if len(tokens) == 0 {
		return Name{}, ErrEmptyName
	}
	return Name{Token: tokens[0], Title: strings.Join(tokens[1:], " ")}, nil
}

// stem removes the final extension from a file name. Directory names are used
// as is, so "v1.2_Notes" directory keeps its full name.
func stem(name string, isDir bool) string {
	if isDir {
		return name
	}
	return strings.TrimSuffix(name, path.Ext(name))
}
