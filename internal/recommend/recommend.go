// Package recommend produces a short upsell suggestion for the dishes
// in a cart. The collaborator is strictly cosmetic: any failure is
// absorbed and replaced with a fixed fallback string, and nothing ever
// waits on it before accepting an order.
package recommend

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"

	"gourmet/internal/monitoring"
)

// Fallback is returned whenever the model cannot be reached or its
// answer is unusable.
const Fallback = "Chúc bạn ngon miệng với sự lựa chọn tuyệt vời này!"

// defaultTimeout bounds a single model call. A late answer degrades
// to the fallback rather than stalling the cart view.
const defaultTimeout = 10 * time.Second

// Recommender wraps an LLM behind the never-fails contract.
type Recommender struct {
	model   llms.LLM
	timeout time.Duration
}

// New builds a recommender over model. A nil model is allowed and
// always answers with the fallback, so the rest of the system needs
// no API key to run.
func New(model llms.LLM) *Recommender {
	return &Recommender{model: model, timeout: defaultTimeout}
}

// Suggest asynchronously produces one suggestion for the named dishes.
// The returned channel is buffered and receives exactly one string;
// the caller may abandon it at any time. When several requests race,
// the last received answer wins.
func (r *Recommender) Suggest(ctx context.Context, dishNames []string) <-chan string {
	out := make(chan string, 1)
	go func() {
		out <- r.suggest(ctx, dishNames)
	}()
	return out
}

func (r *Recommender) suggest(ctx context.Context, dishNames []string) string {
	if r.model == nil || len(dishNames) == 0 {
		monitoring.RecommendationFallbacks.Inc()
		return Fallback
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.model.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, buildPrompt(dishNames)),
	})
	if err != nil {
		log.Printf("Recommendation call failed: %v", err)
		monitoring.RecommendationFallbacks.Inc()
		return Fallback
	}
	if resp == nil || len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		monitoring.RecommendationFallbacks.Inc()
		return Fallback
	}
	return strings.TrimSpace(resp.Choices[0].Content)
}

func buildPrompt(dishNames []string) string {
	return fmt.Sprintf(`Bạn là một chuyên gia ẩm thực. Người dùng đã chọn các món: %s.
Hãy đưa ra một lời khen ngắn gọn và gợi ý thêm một món đồ uống hoặc món phụ phù hợp từ văn hóa ẩm thực Việt Nam để bữa ăn thêm trọn vẹn.
Câu trả lời không quá 3 câu.`, strings.Join(dishNames, ", "))
}
