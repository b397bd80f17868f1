// Package main provides localization for the slidextract CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Extract presentation slides from a video into a PDF.": "プレゼンテーション動画からスライドを抽出してPDFにします。",

		// Runtime messages
		"Extracting slides from %s...":  "%s からスライドを抽出中...",
		"Output saved to %s (%d pages)": "出力を %s に保存しました (%d ページ)",
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",
		"no input video given":          "入力動画が指定されていません",

		// Probe command
		"Codec: %s":             "コーデック: %s",
		"Dimensions: %dx%d":     "解像度: %dx%d",
		"Frame rate: %.3f fps":  "フレームレート: %.3f fps",
		"Frames: %d":            "フレーム数: %d",
		"Duration: %s":          "再生時間: %s",
		"Read by: %s":           "読み取り: %s",
		"slidextract version %s": "slidextract バージョン %s",

		// Summary output
		"Summary saved to %s": "サマリーを %s に保存しました",

		// Summary content
		"Slide Extraction Summary": "スライド抽出サマリー",
		"Generated at":             "生成日時",
		"Input":                    "入力",
		"Settings":                 "設定",
		"Slides":                   "スライド",
		"Document":                 "ドキュメント",
		"Item":                     "項目",
		"Value":                    "値",

		// Input section
		"Source":         "入力元",
		"Video File":     "動画ファイル",
		"Dimensions":     "解像度",
		"Frames Scanned": "走査フレーム数",
		"Masked Pixels":  "除外ピクセル数",

		// Settings section
		"Speaker Position": "話者の位置",
		"Speaker Region":   "話者領域",
		"Threshold":        "しきい値",
		"Minimum Interval": "最小間隔",
		"Sample Rate":      "サンプリングレート",
		"Every frame":      "全フレーム",

		// Slides section
		"No slides detected": "スライドが検出されませんでした",
		"Time":               "時刻",
		"Frame":              "フレーム",
		"Score":              "スコア",

		// Document section
		"Output":    "出力先",
		"Pages":     "ページ数",
		"Page Size": "ページサイズ",
	})
}
