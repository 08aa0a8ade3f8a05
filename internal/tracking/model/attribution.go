/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package model

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	eventsModel "github.com/metriqus/metriqus-sdk-go/internal/events/model"
	"github.com/metriqus/metriqus-sdk-go/internal/system/constants"
	"github.com/metriqus/metriqus-sdk-go/internal/system/utils"
)

// Referrer query keys.
const (
	referrerSource   = "utm_source"
	referrerMedium   = "utm_medium"
	referrerCampaign = "utm_campaign"
	referrerTerm     = "utm_term"
	referrerContent  = "utm_content"
	googleClickID    = "gclid"
)

// Attribution is the install attribution reported by the platform: an Apple
// Ads token payload on iOS or a Play install referrer on Android.
type Attribution struct {
	Platform string
	Raw      string

	// iOS
	Attribution     bool
	OrgID           *int64
	CampaignID      *int64
	ConversionType  string
	ClickDate       string
	ClaimType       string
	AdGroupID       *int64
	CountryOrRegion string
	KeywordID       *int64
	AdID            *int64

	// Android
	Source   string
	Medium   string
	Campaign string
	Term     string
	Content  string
	Params   []eventsModel.TypedValue
}

// ParseIOSAttribution reads the Apple Ads attribution JSON. Fields that are
// missing or unparsable stay unset; nil is returned only when payload is not
// a JSON object.
func ParseIOSAttribution(payload string) *Attribution {

	var members map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &members); err != nil || members == nil {
		return nil
	}
	field := func(key string) string {
		raw, ok := members[key]
		if !ok {
			return ""
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
		if text := strings.TrimSpace(string(raw)); text != "null" {
			return text
		}
		return ""
	}
	long := func(key string) *int64 {
		v, err := strconv.ParseInt(field(key), 10, 64)
		if err != nil {
			return nil
		}
		return &v
	}

	a := &Attribution{
		Platform:        constants.PlatformIOS,
		Raw:             strings.ReplaceAll(payload, `"`, " "),
		OrgID:           long("orgId"),
		CampaignID:      long("campaignId"),
		ConversionType:  field("conversionType"),
		ClickDate:       field("clickDate"),
		ClaimType:       field("claimType"),
		AdGroupID:       long("adGroupId"),
		CountryOrRegion: field("countryOrRegion"),
		KeywordID:       long("keywordId"),
		AdID:            long("adId"),
	}
	a.Attribution, _ = strconv.ParseBool(field("attribution"))
	return a
}

// ParseAndroidReferrer reads a Play install referrer query string. Unknown
// keys are kept in Params, sorted by name. A gclid with no utm_source marks
// the install as Google Ads. Nil is returned for an empty referrer.
func ParseAndroidReferrer(referrer string) *Attribution {

	if strings.TrimSpace(referrer) == "" {
		return nil
	}
	query := utils.ParseAndSanitize(referrer)
	a := &Attribution{
		Platform: constants.PlatformAndroid,
		Raw:      strings.ReplaceAll(referrer, `"`, " "),
		Source:   query[referrerSource],
		Medium:   query[referrerMedium],
		Campaign: query[referrerCampaign],
		Term:     query[referrerTerm],
		Content:  query[referrerContent],
	}

	keys := make([]string, 0, len(query))
	for k := range query {
		switch k {
		case referrerSource, referrerMedium, referrerCampaign, referrerTerm, referrerContent:
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		a.Params = append(a.Params, eventsModel.NewStringValue(k, query[k]))
	}
	if a.Source == "" {
		if _, ok := query[googleClickID]; ok {
			a.Source = "googleads"
		}
	}
	return a
}

// Parameters renders the "attribution" group keyed by platform.
func (a Attribution) Parameters() map[string][]eventsModel.DynamicParameter {

	var p Parameters
	switch a.Platform {
	case constants.PlatformIOS:
		p.AddBool("attribution", &a.Attribution)
		p.AddLong("org_id", a.OrgID)
		p.AddLong("campaign_id", a.CampaignID)
		p.AddString("conversion_type", a.ConversionType)
		p.AddString("click_date", a.ClickDate)
		p.AddString("claim_type", a.ClaimType)
		p.AddLong("ad_group_id", a.AdGroupID)
		p.AddString("country_or_region", a.CountryOrRegion)
		p.AddLong("keyword_id", a.KeywordID)
		p.AddLong("attribution_ad_id", a.AdID)
	default:
		p.AddString("source", a.Source)
		p.AddString("medium", a.Medium)
		p.AddString("campaign", a.Campaign)
		p.AddString("term", a.Term)
		p.AddString("content", a.Content)
	}
	if len(p) == 0 {
		return nil
	}
	return map[string][]eventsModel.DynamicParameter{a.Platform: p}
}
