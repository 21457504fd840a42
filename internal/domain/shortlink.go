package domain

import (
	"errors"
	"fmt"
)

var (
	ErrShortLinkNotFound = errors.New("short link not found")
	ErrInvalidShortCode  = errors.New("invalid short code")
	ErrInvalidURL        = errors.New("invalid url")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrReservedShortCode = errors.New("short code is reserved")
)

// reservedShortCodes are top-level paths the HTTP router serves itself; a
// link using one of them could never be reached through a redirect.
var reservedShortCodes = map[string]struct{}{
	"health":  {},
	"ready":   {},
	"links":   {},
	"redoc":   {},
	"swagger": {},
	"metrics": {},
}

// IsReservedShortCode reports whether code collides with a built-in route.
func IsReservedShortCode(code string) bool {
	_, ok := reservedShortCodes[code]
	return ok
}

// ShortLinkItem maps a short code to the URL it redirects to.
type ShortLinkItem struct {
	ShortCode string `db:"short_code" json:"shortCode" mapstructure:"short_code" validate:"required,max=64,printascii"`
	URL       string `db:"url" json:"url" mapstructure:"url" validate:"required,url"`
}

func NewShortLinkItem(shortCode, url string) (ShortLinkItem, error) {
	if shortCode == "" {
		return ShortLinkItem{}, ErrInvalidShortCode
	}
	if url == "" {
		return ShortLinkItem{}, ErrInvalidURL
	}

	return ShortLinkItem{
		ShortCode: shortCode,
		URL:       url,
	}, nil
}

// InvalidArgumentError reports a missing or unusable constructor argument.
type InvalidArgumentError struct {
	Param string
}

func NewInvalidArgumentError(param string) *InvalidArgumentError {
	return &InvalidArgumentError{Param: param}
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s must not be nil", e.Param)
}

func (e *InvalidArgumentError) Unwrap() error {
	return ErrInvalidArgument
}
