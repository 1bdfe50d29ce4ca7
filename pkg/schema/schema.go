// Package schema defines the structural contract for the analysis response:
// the constraint sent to the model with every audit request, and the
// parse-and-validate step that turns the model's JSON reply into a typed
// result. Nothing past this boundary trusts raw external JSON.
package schema

// Closed enumerations of the contract.
var (
	severityValues       = []string{"CRITICAL", "WARNING", "INFO", "GOOD"}
	categoryValues       = []string{"TECHNICAL", "CONTENT", "UX_MOBILE", "AUTHORITY"}
	auditTypeValues      = []string{"WEB", "APP"}
	marketPositionValues = []string{"LEADER", "CHALLENGER", "NICHE"}
	effortValues         = []string{"LOW", "MEDIUM", "HIGH"}
	impactValues         = []string{"HIGH", "MEDIUM", "LOW"}
	stageValues          = []string{"IMMEDIATE", "SHORT_TERM", "LONG_TERM"}
	sentimentValues      = []string{"POSITIVE", "NEUTRAL", "NEGATIVE"}
)

func obj(props map[string]any, required ...string) map[string]any {
	m := map[string]any{"type": "OBJECT", "properties": props}
	if len(required) > 0 {
		m["required"] = required
	}
	return m
}

func nullable(m map[string]any) map[string]any {
	m["nullable"] = true
	return m
}

func str() map[string]any                { return map[string]any{"type": "STRING"} }
func nullStr() map[string]any            { return nullable(str()) }
func strEnum(vals []string) map[string]any {
	return map[string]any{"type": "STRING", "enum": vals}
}
func num() map[string]any     { return map[string]any{"type": "NUMBER"} }
func boolean() map[string]any { return map[string]any{"type": "BOOLEAN"} }
func arr(items map[string]any) map[string]any {
	return map[string]any{"type": "ARRAY", "items": items}
}
func strArr() map[string]any { return arr(str()) }

func categoryScores() map[string]any {
	return obj(map[string]any{
		"technical": num(),
		"content":   num(),
		"ux":        num(),
		"authority": num(),
	}, "technical", "content", "ux", "authority")
}

func linkBreakdown() map[string]any {
	return obj(map[string]any{
		"dofollow": num(),
		"nofollow": num(),
		"broken":   num(),
	})
}

// ResponseSchema returns the structural constraint for the analysis reply.
// It enumerates every top-level field of the result except those stamped by
// the client after parsing (id, timestamp, url, audience/geo echo).
// Competitor metrics are deliberately non-nullable so the model estimates
// instead of returning degenerate zeros or nulls.
func ResponseSchema() map[string]any {
	return obj(map[string]any{
		"auditType":    strEnum(auditTypeValues),
		"overallScore": num(),
		"categoryScores": categoryScores(),
		"summary":      str(),
		"specs": nullable(obj(map[string]any{
			"titleTag":              str(),
			"titleLength":           num(),
			"metaDescription":       str(),
			"metaDescriptionLength": num(),
			"canonicalTag":          nullStr(),
			"robotsMeta":            nullStr(),
			"viewportMeta":          nullStr(),
			"charset":               nullStr(),
			"h1Count":               num(),
			"h1Content":             str(),
			"headingStructure":      str(),
			"wordCount":             num(),
			"textToHtmlRatio":       num(),
			"imageCount":            num(),
			"imagesWithoutAlt":      num(),
			"internalLinkCount":     num(),
			"externalLinkCount":     num(),
			"linkStats": nullable(obj(map[string]any{
				"internal": linkBreakdown(),
				"external": linkBreakdown(),
			})),
			"schemaTypes":   strArr(),
			"openGraphTags": boolean(),
			"twitterCard":   boolean(),
			"favicon":       boolean(),
		})),
		"asoSpecs": nullable(obj(map[string]any{
			"appName":           str(),
			"appNameLength":     num(),
			"subtitle":          nullStr(),
			"shortDescription":  nullStr(),
			"promotionalText":   nullStr(),
			"descriptionLength": num(),
			"keywordsDetected":  strArr(),
			"rating":            num(),
			"reviewCount":       num(),
			"lastUpdated":       nullStr(),
			"version":           nullStr(),
			"hasVideoPreview":   boolean(),
		})),
		"issues": arr(obj(map[string]any{
			"id":             str(),
			"title":          str(),
			"description":    str(),
			"severity":       strEnum(severityValues),
			"category":       strEnum(categoryValues),
			"recommendation": str(),
			"codeFix": nullable(obj(map[string]any{
				"current":     str(),
				"optimized":   str(),
				"explanation": str(),
			})),
			"impact": str(),
			"effort": strEnum(effortValues),
		}, "title", "severity", "category")),
		"roadmap": arr(obj(map[string]any{
			"stage": strEnum(stageValues),
			"tasks": arr(obj(map[string]any{
				"task":   str(),
				"impact": strEnum(impactValues),
				"effort": strEnum(effortValues),
			})),
		})),
		"contentAnalysis": nullable(obj(map[string]any{
			"tone":             str(),
			"readabilityLevel": str(),
			"sentiment":        strEnum(sentimentValues),
			"topEntities":      strArr(),
		})),
		"keywordAnalysis": nullable(obj(map[string]any{
			"topKeywords": arr(obj(map[string]any{
				"keyword": str(),
				"count":   num(),
				"density": num(),
			})),
			"recommendation": str(),
		})),
		"socialPreview": nullable(obj(map[string]any{
			"title":       nullStr(),
			"description": nullStr(),
			"image":       nullStr(),
			"siteName":    nullStr(),
		})),
		"techStack":          strArr(),
		"keywordStrategy":    strArr(),
		"contentGapAnalysis": str(),
		"trafficForecast": arr(obj(map[string]any{
			"month":     str(),
			"current":   num(),
			"projected": num(),
		})),
		"competitors": arr(obj(map[string]any{
			"name":           str(),
			"url":            str(),
			"overlapScore":   num(),
			"marketPosition": strEnum(marketPositionValues),
			"strengths":      strArr(),
			"weaknesses":     strArr(),
			"scores":         categoryScores(),
			"metrics": obj(map[string]any{
				"monthlyTraffic":  num(),
				"organicKeywords": num(),
				"domainAuthority": num(),
				"backlinks":       num(),
				"topKeywords":     strArr(),
			}),
		})),
	}, "overallScore", "categoryScores", "summary", "issues", "competitors", "trafficForecast")
}
