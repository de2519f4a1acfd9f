package plan

import (
	"fmt"
	"strings"
)

const schemaExample = `{
  "title": "string",
  "days": [
    {
      "day": 1,
      "schedule": [
        {
          "time": "HH:MM",
          "place": "string",
          "description": "string",
          "lat": 35.0116,
          "lng": 135.7681
        }
      ]
    }
  ],
  "hotels": [
    {
      "name": "string",
      "area": "string",
      "price": "string",
      "features": ["string", "string"],
      "lat": 35.0116,
      "lng": 135.7681
    }
  ],
  "packingList": ["string"],
  "advice": ["string"]
}`

// BuildPrompt renders the generation instructions for req. It is pure and
// deterministic; absent optional fields are replaced by localized defaults.
func BuildPrompt(req TravelRequest, lang Language) string {
	if lang == LangJapanese {
		return buildPromptJA(req)
	}
	return buildPromptEN(req)
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func joinStyle(style []string, sep, def string) string {
	if len(style) == 0 {
		return def
	}
	return strings.Join(style, sep)
}

func buildPromptEN(req TravelRequest) string {
	span := ParseDuration(req.Duration)
	var dayRule string
	switch {
	case span.Exact():
		dayRule = fmt.Sprintf("The \"days\" array MUST contain exactly %d entries, numbered 1 to %d, matching the duration \"%s\".", span.Min, span.Min, req.Duration)
	case span.Max == 0 && span.Min > 1:
		dayRule = fmt.Sprintf("The \"days\" array MUST contain at least %d entries, numbered consecutively from 1, matching the duration \"%s\".", span.Min, req.Duration)
	default:
		dayRule = fmt.Sprintf("The \"days\" array MUST contain one entry per travel day implied by the duration \"%s\", numbered consecutively from 1.", req.Duration)
	}

	var seasonal string
	if strings.TrimSpace(req.Timing) != "" {
		seasonal = fmt.Sprintf(`
## Season and timing
The trip takes place: %s. Let this shape the plan:
- Prefer spots that are at their best in that season (blossoms, autumn leaves, snow, beaches, ...).
- Include events or festivals held during that period when there are any.
- Choose indoor or outdoor activities that suit the expected weather.
- Mention seasonal crowding and hotel price trends inside the descriptions.
`, req.Timing)
	}

	return fmt.Sprintf(`Role: You are a professional travel planner. Create the best possible travel plan for the conditions below.

OUTPUT RULES (MUST READ):
1. Respond with JSON only. No prose before or after the JSON.
2. Do NOT wrap the JSON in Markdown code fences (no `+"```json"+` or `+"```"+`).
3. Follow the schema below field by field. Every "lat" and "lng" MUST be a JSON number (not a string).

## Travel conditions
- Destination: %s
- Duration: %s
- Travel period: %s
- Budget: %s
- Companions: %s
- Travel style: %s
- Other requests: %s
%s
## Output schema (JSON)
%s

## Constraints
- %s
- Each schedule item needs a realistic "time" (HH:MM) that allows for travel between places, and a one-sentence "description".
- Suggest 1 or 2 hotels that match the budget tier "%s".
- Give real coordinates for every place and hotel so they can be shown on a map.
- Keep the tone friendly and upbeat.
`,
		req.Destination,
		req.Duration,
		orDefault(req.Timing, "unspecified"),
		req.Budget,
		req.Companions,
		joinStyle(req.Style, ", ", "no preference"),
		orDefault(req.FreeText, "none specified"),
		seasonal,
		schemaExample,
		dayRule,
		req.Budget,
	)
}

func buildPromptJA(req TravelRequest) string {
	span := ParseDuration(req.Duration)
	var dayRule string
	switch {
	case span.Exact():
		dayRule = fmt.Sprintf("\"days\" は日程「%s」に合わせて、1 から %d まで連番でちょうど %d 日分作成してください。", req.Duration, span.Min, span.Min)
	case span.Max == 0 && span.Min > 1:
		dayRule = fmt.Sprintf("\"days\" は日程「%s」に合わせて、1 から連番で %d 日分以上作成してください。", req.Duration, span.Min)
	default:
		dayRule = fmt.Sprintf("\"days\" は日程「%s」の日数分、1 から連番で作成してください。", req.Duration)
	}

	var seasonal string
	if strings.TrimSpace(req.Timing) != "" {
		seasonal = fmt.Sprintf(`
## 重要：時期についての考慮
旅行時期「%s」を考慮して、以下のような提案を行ってください：
- その季節ならではの観光スポット（例：桜、紅葉、雪景色、ビーチなど）
- その時期に開催されるイベントや祭りがあれば盛り込む
- 気候に合った活動（屋内・屋外）
- シーズンによる混雑具合やホテルの価格傾向のアドバイス（説明文の中に含める）
`, req.Timing)
	}

	return fmt.Sprintf(`あなたはプロの旅行プランナーです。以下の条件に基づいて、最高の旅行プランを作成してください。
出力は必ずJSON形式のみとし、マークダウンのコードブロック(`+"```json ... ```"+`)で囲まないで、生のJSONのみを返してください。
"lat" と "lng" は必ず数値（文字列ではない）で返してください。

## 旅行条件
- 行き先: %s
- 日程: %s
- 旅行時期: %s
- 予算: %s
- 同行者: %s
- 旅行スタイル: %s
- その他要望: %s
%s
## 出力フォーマット (JSON)
%s

## 制約事項
- %s
- タイムラインは現実的な移動時間を考慮し、"description" は1文で書いてください。
- 宿泊先は予算「%s」に合ったものを1〜2軒提案してください。
- すべてのスポットとホテルに地図表示用の実在する座標を付けてください。
- 文体は「〜です、〜ます」調で、楽しそうな雰囲気にしてください。
`,
		req.Destination,
		req.Duration,
		orDefault(req.Timing, "指定なし"),
		req.Budget,
		req.Companions,
		joinStyle(req.Style, ", ", "特になし"),
		orDefault(req.FreeText, "特になし"),
		seasonal,
		schemaExample,
		dayRule,
		req.Budget,
	)
}
