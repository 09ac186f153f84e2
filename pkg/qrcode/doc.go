// Package qrcode renders login links as QR code images, so a multipass URL
// can be handed to a phone or printed.
//
// Images are PNG. Generate returns the raw bytes, DataURI returns a
// base64 data URI for <img> tags and WriteFile stores the image on disk.
// Rendering is delegated to github.com/skip2/go-qrcode.
//
// # Usage
//
//	img, err := qrcode.Generate(loginURL, 320)
//	if err != nil {
//		// handle error
//	}
//
//	uri, err := qrcode.DataURI(loginURL, 0, qrcode.WithRecoveryLevel(qrcode.High))
//
// A size of zero or less selects DefaultSize. Multipass tokens grow with the
// attribute document, so very large documents may exceed QR capacity; that
// case fails with ErrContentTooLarge.
//
// # Error Handling
//
// ErrEmptyContent, ErrContentTooLarge and ErrGenerationFailed are sentinels
// to be matched with errors.Is.
package qrcode
