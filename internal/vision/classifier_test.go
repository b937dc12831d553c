package vision

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgmax(t *testing.T) {
	assert.Equal(t, 0, argmax([]float32{5}))
	assert.Equal(t, 3, argmax([]float32{0.1, 0.2, 0.05, 0.9, 0.3}))
	// Ties resolve to the first occurrence.
	assert.Equal(t, 1, argmax([]float32{0.1, 0.5, 0.5}))
}

func TestFoodLabels_Vocabulary(t *testing.T) {
	require.Len(t, FoodLabels, 10)
	assert.Equal(t, "apple_pie", FoodLabels[0])
	assert.Equal(t, "fried_rice", FoodLabels[9])
}

func TestDecodeImage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))

	img, err := decodeImage(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())

	_, err = decodeImage([]byte("not an image"))
	assert.Error(t, err)
}

func TestPreprocess_Geometry(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 64, 48))))
	img, err := decodeImage(buf.Bytes())
	require.NoError(t, err)

	out := preprocess(img)
	assert.Len(t, out, 3*224*224)
}
