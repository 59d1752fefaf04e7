package script

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitUnitsBasic(t *testing.T) {
	text := "क्या आप जानते हैं कि स्पेस में नाखून खतरनाक हो सकते हैं? ज़ीरो ग्रैविटी में कटे नाखून हवा में तैरते हैं। अब सोचिए, कितनी बड़ी मुसीबत!"
	units := SplitUnits(text)

	require.Len(t, units, 3)
	assert.True(t, strings.HasSuffix(units[0], "?"))
	assert.True(t, strings.HasSuffix(units[2], "!"))
}

func TestSplitUnitsHindiFullStop(t *testing.T) {
	text := "यह पहला वाक्य है। यह दूसरा वाक्य है।"
	units := SplitUnits(text)

	require.Len(t, units, 2)
	assert.Equal(t, "यह पहला वाक्य है।", units[0])
	assert.Equal(t, "यह दूसरा वाक्य है।", units[1])
}

func TestSplitUnitsMinimumFloor(t *testing.T) {
	// 短于下限的句点不应闭合单元（如缩写 "Dr."）
	text := "Dr. Sharma ने एक नया प्रयोग किया। यह प्रयोग सफल रहा।"
	units := SplitUnits(text)

	require.NotEmpty(t, units)
	assert.True(t, strings.HasPrefix(units[0], "Dr. Sharma"))
}

func TestSplitUnitsTrailingRemainder(t *testing.T) {
	text := "पहला पूरा वाक्य यहाँ है। बचा हुआ अधूरा हिस्सा"
	units := SplitUnits(text)

	require.Len(t, units, 2)
	assert.Equal(t, "बचा हुआ अधूरा हिस्सा", units[1])
}

func TestSplitUnitsReconstruction(t *testing.T) {
	texts := []string{
		"क्या आप जानते हैं कि मरने के बाद भी शरीर काम करता है? दिल बंद होने के बाद भी कुछ कोशिकाएं एक्टिव रहती हैं। इसलिए ट्रांसप्लांट समय की रेस होती है। अब सोचिए!",
		"Track cycles have no brakes! राइडर पैडल उल्टा घुमा कर स्पीड कम करते हैं।",
		"बिना किसी सीमांत चिह्न वाला पाठ",
	}

	for _, text := range texts {
		units := SplitUnits(text)
		rejoined := strings.Join(units, " ")
		// 空白归一化后拼接应还原原文
		assert.Equal(t, strings.Join(strings.Fields(text), " "), strings.Join(strings.Fields(rejoined), " "))
	}
}

func TestSplitUnitsEmptyInput(t *testing.T) {
	assert.Empty(t, SplitUnits(""))
	assert.Empty(t, SplitUnits("   "))
}
