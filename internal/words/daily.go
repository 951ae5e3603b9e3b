package words

import (
	"context"
	"fmt"
	"time"

	"github.com/robalobadob/ahorcado/internal/daily"
)

// DailyWord returns the word of the day for topic. Every caller using the
// same salt gets the same word for the same UTC date.
func DailyWord(ctx context.Context, c Catalog, topic string, date time.Time, salt string) (string, error) {
	list, err := c.Words(ctx, topic)
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmptyTopic, topic)
	}
	return list[daily.WordIndex(date, salt, topic, len(list))], nil
}
