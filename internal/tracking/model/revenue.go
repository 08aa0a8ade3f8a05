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
	eventsModel "github.com/metriqus/metriqus-sdk-go/internal/events/model"
)

// AdSource names the mediation network that reported an ad impression.
type AdSource string

const (
	AdSourceAppLovin AdSource = "applovin"
	AdSourceAdMob    AdSource = "google admob"
)

type AdUnit int

const (
	AdUnitBanner AdUnit = iota
	AdUnitInterstitial
	AdUnitRewarded
	AdUnitRewardedInterstitial
	AdUnitNativeAdvanced
	AdUnitAppOpen
)

// String returns the collector's spelling, including its historic typo for
// native ads.
func (u AdUnit) String() string {
	switch u {
	case AdUnitInterstitial:
		return "interstitial"
	case AdUnitRewarded:
		return "rewarded"
	case AdUnitRewardedInterstitial:
		return "rewarded_interstitial"
	case AdUnitNativeAdvanced:
		return "native_advenced"
	case AdUnitAppOpen:
		return "app_open"
	default:
		return "banner"
	}
}

// AdRevenue describes one paid ad impression.
type AdRevenue struct {
	Source             AdSource
	Revenue            *float64
	Currency           string
	AdImpressionsCount *int32
	AdRevenueNetwork   string
	AdRevenueUnit      string
	AdRevenuePlacement string
}

func NewAdRevenue(source AdSource, unit AdUnit, revenue float64, currency string) AdRevenue {
	return AdRevenue{Source: source, Revenue: &revenue, Currency: currency, AdRevenueUnit: unit.String()}
}

func NewAppLovinAdRevenue(revenue float64, currency string) AdRevenue {
	return AdRevenue{Source: AdSourceAppLovin, Revenue: &revenue, Currency: currency}
}

func NewAdMobAdRevenue(revenue float64, currency string) AdRevenue {
	return AdRevenue{Source: AdSourceAdMob, Revenue: &revenue, Currency: currency}
}

func (a *AdRevenue) SetRevenue(revenue float64, currency string) {
	a.Revenue = &revenue
	a.Currency = currency
}

// PublisherParameters renders the "publisher" group. Revenue is sent as
// integer micros.
func (a AdRevenue) PublisherParameters() []eventsModel.DynamicParameter {

	var p Parameters
	p.AddString("ad_source", string(a.Source))
	if a.Revenue != nil {
		p.add("ad_revenue", Micros(*a.Revenue))
	}
	p.AddString("ad_currency", a.Currency)
	p.AddInteger("ad_impression_count", a.AdImpressionsCount)
	p.AddString("ad_revenue_network", a.AdRevenueNetwork)
	p.AddString("ad_revenue_unit", a.AdRevenueUnit)
	p.AddString("ad_revenue_placement", a.AdRevenuePlacement)
	return p
}

// InAppRevenue describes an in-app purchase. Only populated fields are sent.
type InAppRevenue struct {
	Revenue       *float64
	Currency      string
	ProductID     string
	Name          string
	Brand         string
	Variant       string
	Category      string
	Category2     string
	Category3     string
	Category4     string
	Category5     string
	Price         *float64
	Quantity      *int32
	Refund        *float64
	Coupon        string
	Affiliation   string
	LocationID    string
	ListID        string
	ListName      string
	ListIndex     *int32
	PromotionID   string
	PromotionName string
	CreativeName  string
	CreativeSlot  string
	ItemParams    []eventsModel.TypedValue
	TransactionID string
}

func NewInAppRevenue(amount float64, currency string) InAppRevenue {
	return InAppRevenue{Revenue: &amount, Currency: currency}
}

func (r *InAppRevenue) SetRevenue(amount float64, currency string) {
	r.Revenue = &amount
	r.Currency = currency
}

// ItemParameters renders the "item" group.
func (r InAppRevenue) ItemParameters() []eventsModel.DynamicParameter {

	var p Parameters
	if r.Revenue != nil {
		p.add("revenue", Micros(*r.Revenue))
	}
	p.AddString("currency", r.Currency)
	p.AddString("product_id", r.ProductID)
	p.AddString("name", r.Name)
	p.AddString("brand", r.Brand)
	p.AddString("variant", r.Variant)
	p.AddString("category", r.Category)
	p.AddString("category2", r.Category2)
	p.AddString("category3", r.Category3)
	p.AddString("category4", r.Category4)
	p.AddString("category5", r.Category5)
	p.AddDouble("price", r.Price)
	p.AddInteger("quantity", r.Quantity)
	p.AddDouble("refund", r.Refund)
	p.AddString("coupon", r.Coupon)
	p.AddString("affiliation", r.Affiliation)
	p.AddString("location_id", r.LocationID)
	p.AddString("list_id", r.ListID)
	p.AddString("list_name", r.ListName)
	p.AddInteger("list_index", r.ListIndex)
	p.AddString("promotion_id", r.PromotionID)
	p.AddString("promotion_name", r.PromotionName)
	p.AddString("creative_name", r.CreativeName)
	p.AddString("creative_slot", r.CreativeSlot)
	p.AddTypedList(eventsModel.ItemParamsKey, r.ItemParams)
	return p
}
