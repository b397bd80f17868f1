package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Starting pipeline":                               "パイプラインを開始します",
		"Pipeline completed successfully":                 "パイプラインが正常に完了しました",
		"Downloading %s":                                  "%s をダウンロード中",
		"Opening video %s":                                "動画 %s を開いています",
		"Video is %dx%d":                                  "動画サイズ: %dx%d",
		"Detecting slides (threshold %.2f, min interval %s)": "スライドを検出中 (しきい値 %.2f, 最小間隔 %s)",
		"Detected %d slides in %d frames":                 "%[2]d フレームから %[1]d 枚のスライドを検出しました",
		"Writing %d pages":                                "%d ページを書き出し中",
		"Temporary files kept in %s":                      "一時ファイルを %s に残しました",

		// Detect stage
		"Mask excludes %d of %d pixels at %s": "マスクは %[3]s の %[2]d ピクセル中 %[1]d ピクセルを除外します",
		"Slide %d at %s (score %.3f)":         "スライド %d: %s (スコア %.3f)",
		"Scanned %d/%d frames":                "%d/%d フレームを走査しました",
		"Scanned %d frames":                   "%d フレームを走査しました",

		// Document stage
		"Composing %d pages at %dx%d with %d workers": "%d ページを %dx%d で %d ワーカーで合成中",
		"Wrote %d pages to %s":                        "%d ページを %s に書き出しました",

		// Warnings
		"Failed to remove temporary files: %s": "一時ファイルの削除に失敗しました: %s",
		"Failed to save mask: %v":              "マスクの保存に失敗しました: %v",
		"Failed to save slide %d: %v":          "スライド %d の保存に失敗しました: %v",
		"Failed to save detection report: %v":  "検出レポートの保存に失敗しました: %v",
		"Failed to discard document: %v":       "ドキュメントの破棄に失敗しました: %v",

		// Errors
		"Invalid configuration: %s":    "設定が不正です: %s",
		"Failed to download video: %s": "動画のダウンロードに失敗しました: %s",
		"Failed to open video: %s":     "動画を開けませんでした: %s",
		"Failed to detect slides: %s":  "スライドの検出に失敗しました: %s",
		"Failed to write document: %s": "ドキュメントの書き込みに失敗しました: %s",
	})
}
