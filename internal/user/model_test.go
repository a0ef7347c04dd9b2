package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookCodec_RoundTrip(t *testing.T) {
	book := &Book{
		Key:              "1",
		Title:            "New Book",
		AuthorName:       []string{"Author"},
		FirstPublishYear: 2024,
	}

	blob, err := EncodeBook(book)
	require.NoError(t, err)
	require.NotEmpty(t, blob)

	decoded, err := DecodeBook(blob)
	require.NoError(t, err)

	// Serialize then deserialize is identity on valid input
	assert.Equal(t, book, decoded)
}

func TestEncodeBook_StorageForm(t *testing.T) {
	blob, err := EncodeBook(&Book{Key: "123", Title: "Test Book"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"key":"123","title":"Test Book"}`, blob)
}

func TestEncodeBook_Nil(t *testing.T) {
	blob, err := EncodeBook(nil)
	require.NoError(t, err)
	assert.Empty(t, blob)
}

func TestDecodeBook_EmptyBlob(t *testing.T) {
	book, err := DecodeBook("")
	require.NoError(t, err)
	assert.Nil(t, book)
}

func TestDecodeBook_InvalidBlob(t *testing.T) {
	_, err := DecodeBook("not json")
	assert.Error(t, err)
}
