package storage

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_decodeDataURI(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("fake image bytes"))

	object, err := decodeDataURI("data:image/png;base64," + payload)
	require.NoError(t, err)
	require.Equal(t, "image/png", object.Mime)
	require.Equal(t, "image.png", object.FileName)
	require.Equal(t, []byte("fake image bytes"), object.Data)

	_, err = decodeDataURI("data:image/png;base64")
	require.Error(t, err)

	_, err = decodeDataURI("data:image/png;base64,!!!not-base64!!!")
	require.Error(t, err)
}

func Test_fileNameForMime(t *testing.T) {
	require.Equal(t, "image.jpg", fileNameForMime("image/jpeg"))
	require.Equal(t, "image.webp", fileNameForMime("image/webp"))
	require.Equal(t, "image", fileNameForMime("application/pdf"))
}
