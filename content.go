package marquee

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

var showcaseTitles = []string{
	"Chill Vibes", "Workout Energy", "Late Night Jazz", "Indie Discoveries",
	"Electronic Dreams", "Acoustic Sessions",
}

var loremWords = strings.Fields(`lorem ipsum dolor sit amet consectetur adipiscing elit sed do
	eiusmod tempor incididunt ut labore et dolore magna aliqua enim ad minim veniam quis nostrud
	exercitation ullamco laboris nisi aliquip ex ea commodo consequat duis aute irure in
	reprehenderit voluptate velit esse cillum fugiat nulla pariatur excepteur sint occaecat`)

const (
	minTrackCount = 15
	maxTrackCount = 150
)

// GenerateShowcase returns n synthetic playlist records. The same seed always
// yields the same records. Titles cycle through a fixed list; past the first
// cycle a volume number is appended.
func GenerateShowcase(seed uint64, n int) []ShowcaseRecord {
	if n <= 0 {
		return nil
	}
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	src := rand.NewChaCha8(key)
	rng := rand.New(src)

	out := make([]ShowcaseRecord, n)
	for i := range out {
		title := showcaseTitles[i%len(showcaseTitles)]
		if vol := i / len(showcaseTitles); vol > 0 {
			title = fmt.Sprintf("%s Vol. %d", title, vol+1)
		}
		id, err := uuid.NewRandomFromReader(src)
		if err != nil {
			// ChaCha8 never fails to fill a buffer.
			panic("marquee: showcase id: " + err.Error())
		}
		out[i] = ShowcaseRecord{
			ID:          id,
			Title:       title,
			Description: sentence(rng),
			ImageURL:    fmt.Sprintf("https://picsum.photos/300/300?random=%d", i+1),
			TrackCount:  minTrackCount + rng.IntN(maxTrackCount-minTrackCount+1),
		}
	}
	return out
}

// sentence builds a capitalized lorem sentence of 4 to 9 words.
func sentence(rng *rand.Rand) string {
	words := make([]string, 4+rng.IntN(6))
	for i := range words {
		words[i] = loremWords[rng.IntN(len(loremWords))]
	}
	words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	return strings.Join(words, " ") + "."
}
