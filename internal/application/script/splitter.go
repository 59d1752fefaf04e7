package script

import "strings"

// minUnitRunes 句子闭合的最小累积长度，避免在缩写式句点上断句
const minUnitRunes = 10

// isTerminal 句末标点：拉丁 .?! 与印地语全角句号 ।
func isTerminal(r rune) bool {
	return r == '.' || r == '?' || r == '!' || r == '।'
}

// SplitUnits 将文本切分为有序的句子单元
// 只有累积长度超过下限时句末标点才闭合一个单元；尾部剩余文本作为最后一个单元。
// 所有单元按空格重新拼接后可还原原文（仅空白归一化）。
func SplitUnits(text string) []string {
	var units []string
	var current []rune

	for _, r := range text {
		current = append(current, r)
		if isTerminal(r) {
			unit := strings.TrimSpace(string(current))
			if len([]rune(unit)) > minUnitRunes {
				units = append(units, unit)
				current = current[:0]
			}
		}
	}

	if rest := strings.TrimSpace(string(current)); rest != "" {
		units = append(units, rest)
	}

	return units
}
