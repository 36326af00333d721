package enums

import (
	"fmt"
	"strings"
)

type ContentType string

const (
	ContentTypeComment          ContentType = "comment"
	ContentTypeEventDescription ContentType = "event_description"
	ContentTypeEventTitle       ContentType = "event_title"
	ContentTypeProfileBio       ContentType = "profile_bio"
)

var allContentTypes = map[ContentType]struct{}{
	ContentTypeComment:          {},
	ContentTypeEventDescription: {},
	ContentTypeEventTitle:       {},
	ContentTypeProfileBio:       {},
}

func ParseContentType(value string) (ContentType, error) {
	ct := ContentType(strings.TrimSpace(value))
	if _, ok := allContentTypes[ct]; !ok {
		return "", fmt.Errorf("unknown content type %q", value)
	}
	return ct, nil
}

func (c ContentType) Valid() bool {
	_, ok := allContentTypes[c]
	return ok
}

func (c ContentType) String() string {
	return string(c)
}
