package gesture

import (
	"bytes"
	"encoding/base64"
	"testing"
)

func TestDecodeFrame_Plain(t *testing.T) {
	raw := []byte{0xff, 0xd8, 0xff, 0xe0}
	got, err := DecodeFrame(base64.StdEncoding.EncodeToString(raw))
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Fatalf("got=%v want=%v", got, raw)
	}
}

func TestDecodeFrame_DataURLPrefixStripped(t *testing.T) {
	raw := []byte("jpegbytes")
	in := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw)

	got, err := DecodeFrame(in)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Fatalf("got=%q want=%q", got, raw)
	}
}

func TestDecodeFrame_Invalid(t *testing.T) {
	if _, err := DecodeFrame(""); err == nil {
		t.Error("пустой кадр должен давать ошибку")
	}
	if _, err := DecodeFrame("не base64!!!"); err == nil {
		t.Error("мусор должен давать ошибку")
	}
}
