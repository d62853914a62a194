package generator

import "dailyvocab/internal/domain"

// FallbackWords returns the list served when generation fails
func FallbackWords() []domain.Word {
	return []domain.Word{
		{
			Text:               "perseverance",
			Phonetic:           "[ˌpɜːrsəˈvɪrəns]",
			PartOfSpeech:       "n.",
			Example:            "Success requires perseverance and hard work.",
			Translation:        "毅力；坚持不懈",
			ExampleTranslation: "成功需要毅力和努力工作。",
			OtherForms:         "v. persevere 坚持不懈",
		},
		{
			Text:               "eloquent",
			Phonetic:           "[ˈeləkwənt]",
			PartOfSpeech:       "adj.",
			Example:            "She gave an eloquent speech about climate change.",
			Translation:        "雄辩的；口才好的",
			ExampleTranslation: "她就气候变化发表了一次雄辩的演讲。",
			OtherForms:         "n. eloquence 雄辩，口才",
		},
		{
			Text:               "meticulous",
			Phonetic:           "[məˈtɪkjələs]",
			PartOfSpeech:       "adj.",
			Example:            "He is meticulous about every detail in his work.",
			Translation:        "细致的；一丝不苟的",
			ExampleTranslation: "他对工作中的每个细节都很细致。",
			OtherForms:         "adv. meticulously 细致地",
		},
		{
			Text:               "versatile",
			Phonetic:           "[ˈvɜːrsətl]",
			PartOfSpeech:       "adj.",
			Example:            "She is a versatile artist who works in many mediums.",
			Translation:        "多才多艺的；通用的",
			ExampleTranslation: "她是一位多才多艺的艺术家，涉猎多种媒介。",
			OtherForms:         "n. versatility 多才多艺",
		},
		{
			Text:               "profound",
			Phonetic:           "[prəˈfaʊnd]",
			PartOfSpeech:       "adj.",
			Example:            "The book had a profound impact on my thinking.",
			Translation:        "深刻的；深远的",
			ExampleTranslation: "这本书对我的思维产生了深远的影响。",
			OtherForms:         "adv. profoundly 深刻地",
		},
	}
}

// DefaultWords returns the starter list persisted when a user has no cache yet
func DefaultWords() []domain.Word {
	return []domain.Word{
		{
			Text:               "explore",
			Phonetic:           "[ɪkˈsplɔːr]",
			PartOfSpeech:       "v.",
			Example:            "I love to explore new ideas.",
			Translation:        "探索；探讨",
			ExampleTranslation: "我喜欢探索新想法。",
			OtherForms:         "n. exploration 探索",
		},
		{
			Text:               "creativity",
			Phonetic:           "[ˌkriːeɪˈtɪvəti]",
			PartOfSpeech:       "n.",
			Example:            "Creativity helps us solve problems.",
			Translation:        "创造力",
			ExampleTranslation: "创造力帮助我们解决问题。",
			OtherForms:         "adj. creative 创造性的",
		},
		{
			Text:               "dedicate",
			Phonetic:           "[ˈdedɪkeɪt]",
			PartOfSpeech:       "v.",
			Example:            "She dedicates her time to learning.",
			Translation:        "献身；致力于",
			ExampleTranslation: "她把时间投入到学习中。",
			OtherForms:         "n. dedication 奉献",
		},
		{
			Text:               "insight",
			Phonetic:           "[ˈɪnsaɪt]",
			PartOfSpeech:       "n.",
			Example:            "This book gave me great insight.",
			Translation:        "洞察力；深刻见解",
			ExampleTranslation: "这本书让我受益匪浅。",
			OtherForms:         "adj. insightful 有洞察力的",
		},
		{
			Text:               "curious",
			Phonetic:           "[ˈkjʊəriəs]",
			PartOfSpeech:       "adj.",
			Example:            "He is curious about how things work.",
			Translation:        "好奇的",
			ExampleTranslation: "他对事物的运作方式很好奇。",
			OtherForms:         "n. curiosity 好奇心",
		},
	}
}
