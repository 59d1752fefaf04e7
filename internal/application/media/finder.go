// Package media 为完成的脚本检索匹配的素材
package media

import (
	"context"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"shorts-script-api/internal/infrastructure/media/pexels"
	"shorts-script-api/pkg/logger"
)

var tracer = otel.Tracer("media")

// maxKeywords 每个脚本最多取用的检索关键词数
const maxKeywords = 5

// maxPerType 每种素材类型最多返回的条数
const maxPerType = 5

var englishWordRe = regexp.MustCompile(`\b[a-zA-Z]{4,}\b`)

// fallbackKeywords 脚本中提取不到关键词时的通用科学词
var fallbackKeywords = []string{"science", "technology", "laboratory", "experiment", "discovery"}

// keywordMapping 印地语到英语的检索词映射
// Pexels 对英语检索词的召回远好于印地语，按固定顺序匹配保证结果可复现
type keywordMapping struct {
	hindi   string
	english string
}

var hindiToEnglish = []keywordMapping{
	{"पानी", "water"}, {"आग", "fire"}, {"हवा", "air"}, {"पेड़", "tree"}, {"पौधे", "plants"},
	{"जानवर", "animals"}, {"पशु", "animals"}, {"मछली", "fish"}, {"पक्षी", "birds"},
	{"सूरज", "sun"}, {"चांद", "moon"}, {"तारे", "stars"}, {"आकाश", "sky"}, {"समुद्र", "ocean"},
	{"पहाड़", "mountain"}, {"नदी", "river"}, {"जंगल", "forest"}, {"रेगिस्तान", "desert"},
	{"बर्फ", "snow"}, {"बारिश", "rain"}, {"बादल", "clouds"}, {"धरती", "earth"},
	{"स्पेस", "space"}, {"अंतरिक्ष", "space"}, {"ग्रह", "planet"}, {"दिमाग", "brain"},
	{"हृदय", "heart"}, {"आंखें", "eyes"}, {"हाथ", "hands"}, {"शरीर", "body"},
	{"भोजन", "food"}, {"खाना", "food"}, {"फल", "fruits"}, {"सब्जी", "vegetables"},
	{"तकनीक", "technology"}, {"कंप्यूटर", "computer"}, {"मोबाइल", "mobile"},
	{"इंटरनेट", "internet"}, {"कार", "car"}, {"ट्रेन", "train"}, {"हवाई", "airplane"},
	{"डॉक्टर", "doctor"}, {"अस्पताल", "hospital"}, {"दवा", "medicine"},
	{"स्कूल", "school"}, {"किताब", "book"}, {"पढ़ाई", "study"}, {"बच्चे", "children"},
	{"माता", "mother"}, {"पिता", "father"}, {"परिवार", "family"}, {"घर", "house"},
	{"शहर", "city"}, {"गांव", "village"}, {"भारत", "india"}, {"दुनिया", "world"},
	{"विज्ञान", "science"}, {"गणित", "math"}, {"रसायन", "chemistry"}, {"भौतिक", "physics"},
	{"प्रकृति", "nature"}, {"वातावरण", "environment"}, {"जलवायु", "climate"},
	{"व्यायाम", "exercise"}, {"योग", "yoga"}, {"खेल", "sports"}, {"क्रिकेट", "cricket"},
	{"संगीत", "music"}, {"नृत्य", "dance"}, {"कला", "art"}, {"फिल्म", "movie"},
	{"रोबोट", "robot"}, {"एआई", "ai"}, {"मशीन", "machine"}, {"इंजीनियर", "engineer"},
	{"समुंदर", "ocean"}, {"पृथ्वी", "earth"}, {"सूर्य", "sun"},
}

// Result 一个脚本的素材检索结果
type Result struct {
	Keywords []string        `json:"keywords"`
	Videos   []*pexels.Video `json:"videos"`
	Images   []*pexels.Photo `json:"images"`
}

// Finder 脚本素材检索器
type Finder struct {
	client *pexels.Client
}

// NewFinder 创建素材检索器
func NewFinder(client *pexels.Client) *Finder {
	return &Finder{client: client}
}

// ExtractKeywords 从脚本文本提取英语检索关键词
// 先按映射表翻译出现的印地语词，再补充前 3 个较长的英语词；
// 均无命中时退回通用科学词。去重后最多返回 5 个，顺序确定。
func ExtractKeywords(script string) []string {
	var keywords []string
	scriptLower := strings.ToLower(script)

	for _, m := range hindiToEnglish {
		if strings.Contains(scriptLower, m.hindi) {
			keywords = append(keywords, m.english)
		}
	}

	english := englishWordRe.FindAllString(script, 3)
	for _, w := range english {
		keywords = append(keywords, strings.ToLower(w))
	}

	if len(keywords) == 0 {
		keywords = append(keywords, fallbackKeywords...)
	}

	seen := make(map[string]bool, len(keywords))
	unique := keywords[:0]
	for _, k := range keywords {
		if seen[k] {
			continue
		}
		seen[k] = true
		unique = append(unique, k)
	}

	if len(unique) > maxKeywords {
		unique = unique[:maxKeywords]
	}
	return unique
}

// FindForScript 为脚本并行检索视频与图片素材
// 单个关键词的检索失败只记日志，不影响其余关键词的结果
func (f *Finder) FindForScript(ctx context.Context, script string) (*Result, error) {
	ctx, span := tracer.Start(ctx, "media.Finder.FindForScript")
	defer span.End()

	keywords := ExtractKeywords(script)
	span.SetAttributes(attribute.StringSlice("media.keywords", keywords))

	result := &Result{Keywords: keywords}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for _, kw := range keywords {
			if len(result.Videos) >= maxPerType {
				break
			}
			videos, err := f.client.SearchVideos(gctx, kw)
			if err != nil {
				logger.Warn(gctx, "video search failed for keyword", "keyword", kw, "error", err.Error())
				continue
			}
			result.Videos = append(result.Videos, videos...)
		}
		if len(result.Videos) > maxPerType {
			result.Videos = result.Videos[:maxPerType]
		}
		return nil
	})

	g.Go(func() error {
		for _, kw := range keywords {
			if len(result.Images) >= maxPerType {
				break
			}
			photos, err := f.client.SearchPhotos(gctx, kw)
			if err != nil {
				logger.Warn(gctx, "photo search failed for keyword", "keyword", kw, "error", err.Error())
				continue
			}
			result.Images = append(result.Images, photos...)
		}
		if len(result.Images) > maxPerType {
			result.Images = result.Images[:maxPerType]
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("media.video_count", len(result.Videos)),
		attribute.Int("media.image_count", len(result.Images)),
	)
	return result, nil
}
