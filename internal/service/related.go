package service

import (
	"strings"

	"dailyvocab/internal/domain"
)

const (
	relSynonym = "同义词"
	relRelated = "相关词"
)

var relatedWords = map[string][]domain.RelatedWord{
	"explore": {
		{Word: "discovery", Relationship: relSynonym, Translation: "发现"},
		{Word: "adventure", Relationship: relRelated, Translation: "冒险"},
		{Word: "investigate", Relationship: relSynonym, Translation: "调查"},
	},
	"creativity": {
		{Word: "innovation", Relationship: relSynonym, Translation: "创新"},
		{Word: "imagination", Relationship: relRelated, Translation: "想象力"},
		{Word: "artistic", Relationship: relRelated, Translation: "艺术的"},
	},
	"dedicate": {
		{Word: "commit", Relationship: relSynonym, Translation: "承诺"},
		{Word: "devote", Relationship: relSynonym, Translation: "奉献"},
		{Word: "focus", Relationship: relRelated, Translation: "专注"},
	},
	"insight": {
		{Word: "understanding", Relationship: relSynonym, Translation: "理解"},
		{Word: "wisdom", Relationship: relRelated, Translation: "智慧"},
		{Word: "perception", Relationship: relSynonym, Translation: "感知"},
	},
	"curious": {
		{Word: "inquisitive", Relationship: relSynonym, Translation: "好奇的"},
		{Word: "interested", Relationship: relRelated, Translation: "感兴趣的"},
		{Word: "wondering", Relationship: relRelated, Translation: "想知道的"},
	},
}

var genericRelatedWords = []domain.RelatedWord{
	{Word: "related", Relationship: relRelated, Translation: "相关的"},
	{Word: "similar", Relationship: relRelated, Translation: "相似的"},
	{Word: "connected", Relationship: relRelated, Translation: "连接的"},
}

// RelatedWords returns synonyms and associated words for text
func (s *WordService) RelatedWords(text string) []domain.RelatedWord {
	list, ok := relatedWords[strings.ToLower(strings.TrimSpace(text))]
	if !ok {
		list = genericRelatedWords
	}
	out := make([]domain.RelatedWord, len(list))
	copy(out, list)
	return out
}
