package settings

import "github.com/cmsplatform/backend/internal/domain/permalink"

// Defaults returns a fresh copy of the default document of a section
func Defaults(section Section) Values {
	switch section {
	case SectionGeneral:
		return Values{
			"siteTitle":   "My Site",
			"tagline":     "Just another site",
			"siteUrl":     "",
			"adminEmail":  "",
			"timezone":    "UTC",
			"dateFormat":  "2006-01-02",
			"timeFormat":  "15:04",
			"language":    "en",
			"currency":    "USD",
			"startOfWeek": 1,
		}
	case SectionWriting:
		return Values{
			"defaultCategory":   nil,
			"defaultPostFormat": "markdown",
			"defaultStatus":     "draft",
			"convertEmoticons":  false,
		}
	case SectionReading:
		return Values{
			"homepageType":            HomepageLatestPosts,
			"homepageId":              nil,
			"postsPageId":             nil,
			"postsPerPage":            10,
			"showSummary":             "excerpt",
			"excerptLength":           150,
			"discourageSearchEngines": false,
		}
	case SectionDiscussion:
		return Values{
			"commentsEnabled":    true,
			"requireModeration":  true,
			"requireNameEmail":   true,
			"closeAfterDays":     0,
			"threadedComments":   true,
			"threadDepth":        5,
			"notifyOnNewComment": true,
		}
	case SectionMedia:
		return Values{
			"maxUploadSizeMb": 10,
			"allowedTypes":    []any{"image/jpeg", "image/png", "image/gif", "image/webp", "application/pdf"},
			"organizeByMonth": true,
			"thumbnailWidth":  150,
			"thumbnailHeight": 150,
		}
	case SectionPermalinks:
		values, _ := Encode(permalink.DefaultSettings())
		return values
	case SectionPrivacy:
		return Values{
			"privacyPolicyPageId": nil,
			"cookieConsent":       false,
			"anonymizeIp":         true,
			"dataRetentionDays":   365,
		}
	}
	return Values{}
}
