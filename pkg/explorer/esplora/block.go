package esplora

import (
	"context"
	"strconv"
	"strings"
)

func (e *esplora) GetBlockHeight(ctx context.Context) (int, error) {
	resp, err := e.get(ctx, "blocks_tip_height", "/blocks/tip/height")
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(resp))
}
