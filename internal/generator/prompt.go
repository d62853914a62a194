package generator

import (
	"fmt"

	"dailyvocab/internal/domain"
)

const (
	wordsSystemPrompt   = "你是一名英语教师，帮助中文母语者积累英语词汇。"
	detailsSystemPrompt = "你是一本严谨的英汉词典。"
)

const wordSchema = `{
  "words": [
    {
      "text": "单词",
      "phonetic": "[音标]",
      "partOfSpeech": "主要词性",
      "translation": "单词本身的中文释义",
      "example": "英文例句",
      "exampleTranslation": "例句的中文翻译",
      "otherForms": "其他词性及释义，没有则为空字符串"
    }
  ]
}`

func levelScope(level domain.DifficultyLevel) string {
	switch level {
	case domain.Elementary:
		return "小学阶段的基础词，例如动物、颜色、数字、家庭和日常用品"
	case domain.MiddleSchool:
		return "中学阶段的常用词，覆盖日常交流与基础阅读中的常见动词和形容词"
	case domain.University:
		return "大学阶段的高级词，包括专业术语、抽象概念与学术表达"
	default:
		return "高中阶段的进阶词，包括学术词汇和较复杂的概念"
	}
}

// wordsPrompt builds the user message asking for wordsPerCall words of the given level
func wordsPrompt(level domain.DifficultyLevel) string {
	return fmt.Sprintf(`为%s水平的学习者挑选%d个有实用价值的英语单词。
范围：%s。
尽量覆盖不同词性与主题，例句自然且符合该水平。
translation 是单词本身的释义，exampleTranslation 是例句的翻译，两者不要混淆。
只输出如下格式的 JSON，不要附加任何说明：

%s`, level.DisplayName(), wordsPerCall, levelScope(level), wordSchema)
}

// detailsPrompt builds the user message asking for one word's dictionary entry
func detailsPrompt(text string) string {
	return fmt.Sprintf(`给出英语单词 "%s" 的词典信息：准确音标、主要词性与释义、一个实用例句及其翻译、其他常用词性。
words 数组只包含这一个单词，text 字段保持为 "%s"。
只输出如下格式的 JSON，不要附加任何说明：

%s`, text, text, wordSchema)
}
