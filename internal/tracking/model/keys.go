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

// Event names understood by the collector.
const (
	EventAdImpression         = "ad_impression"
	EventAddPaymentInfo       = "add_payment_info"
	EventAddShippingInfo      = "add_shipping_info"
	EventAddToCart            = "add_to_cart"
	EventAddToWishlist        = "add_to_wishlist"
	EventAppOpen              = "app_open"
	EventBeginCheckout        = "begin_checkout"
	EventButtonClick          = "button_click"
	EventCampaignDetails      = "campaign_details"
	EventEarnVirtualCurrency  = "earn_virtual_currency"
	EventGenerateLead         = "generate_lead"
	EventJoinGroup            = "join_group"
	EventLevelCompleted       = "level_completed"
	EventLevelEnd             = "level_end"
	EventLevelStart           = "level_start"
	EventLevelUp              = "level_up"
	EventLogin                = "login"
	EventPerformance          = "performance"
	EventPostScore            = "post_score"
	EventPurchase             = "purchase"
	EventRefund               = "refund"
	EventRemoveFromCart       = "remove_from_cart"
	EventScreenView           = "screen_view"
	EventSearch               = "search"
	EventSelectContent        = "select_content"
	EventSelectItem           = "select_item"
	EventSelectPromotion      = "select_promotion"
	EventShare                = "share"
	EventSignUp               = "sign_up"
	EventSpendVirtualCurrency = "spend_virtual_currency"
	EventTutorialBegin        = "tutorial_begin"
	EventTutorialComplete     = "tutorial_complete"
	EventUnlockAchievement    = "unlock_achievement"
	EventViewCart             = "view_cart"
	EventViewItem             = "view_item"
	EventViewItemList         = "view_item_list"
	EventViewPromotion        = "view_promotion"
	EventViewSearchResults    = "view_search_results"
	EventItemUsed             = "item_used"

	EventSessionStart = "session_start"
	EventSessionBeat  = "session_beat"
	EventIAPRevenue   = "iap_revenue"
	EventAdRevenue    = "ad_revenue"
	EventAttribution  = "attribution"
)

// Event parameter names.
const (
	ParameterAchievementID       = "achievement_id"
	ParameterAdFormat            = "ad_format"
	ParameterAdNetworkClickID    = "aclid"
	ParameterAdPlatform          = "ad_platform"
	ParameterAdSource            = "ad_source"
	ParameterAdUnitName          = "ad_unit_name"
	ParameterAmount              = "amount"
	ParameterAffiliation         = "affiliation"
	ParameterButtonName          = "button_name"
	ParameterCP1                 = "cp1"
	ParameterCampaign            = "campaign"
	ParameterCampaignID          = "campaign_id"
	ParameterCampaignAction      = "campaign_action"
	ParameterCharacter           = "character"
	ParameterContent             = "content"
	ParameterContentType         = "content_type"
	ParameterCoupon              = "coupon"
	ParameterCreativeFormat      = "creative_format"
	ParameterCreativeName        = "creative_name"
	ParameterCreativeSlot        = "creative_slot"
	ParameterCurrency            = "currency"
	ParameterDestination         = "destination"
	ParameterDiscount            = "discount"
	ParameterEndDate             = "end_date"
	ParameterExtendSession       = "extend_session"
	ParameterFlightNumber        = "flight_number"
	ParameterFps                 = "fps"
	ParameterGroupID             = "group_id"
	ParameterIndex               = "index"
	ParameterItemBrand           = "item_brand"
	ParameterItemCategory        = "item_category"
	ParameterItemCategory2       = "item_category2"
	ParameterItemCategory3       = "item_category3"
	ParameterItemCategory4       = "item_category4"
	ParameterItemCategory5       = "item_category5"
	ParameterItemID              = "item_id"
	ParameterItemListID          = "item_list_id"
	ParameterItemListName        = "item_list_name"
	ParameterItemName            = "item_name"
	ParameterItemVariant         = "item_variant"
	ParameterItems               = "items"
	ParameterItemType            = "item_type"
	ParameterItemRarity          = "item_rarity"
	ParameterItemClass           = "item_class"
	ParameterLevel               = "level"
	ParameterLevelNumber         = "level_number"
	ParameterLevelName           = "level_name"
	ParameterMap                 = "map"
	ParameterDuration            = "duration"
	ParameterLevelProgress       = "level_progress"
	ParameterLevelReward         = "level_reward"
	ParameterLevelReward1        = "level_reward_1"
	ParameterLevelReward2        = "level_reward_2"
	ParameterLocation            = "location"
	ParameterLocationID          = "location_id"
	ParameterMarketingTactic     = "marketing_tactic"
	ParameterMedium              = "medium"
	ParameterMethod              = "method"
	ParameterNumberOfNights      = "number_of_nights"
	ParameterNumberOfPassengers  = "number_of_passengers"
	ParameterNumberOfRooms       = "number_of_rooms"
	ParameterOrigin              = "origin"
	ParameterPaymentType         = "payment_type"
	ParameterPrice               = "price"
	ParameterPromotionID         = "promotion_id"
	ParameterPromotionName       = "promotion_name"
	ParameterReason              = "reason"
	ParameterQuantity            = "quantity"
	ParameterScore               = "score"
	ParameterScreenClass         = "screen_class"
	ParameterScreenName          = "screen_name"
	ParameterSearchTerm          = "search_term"
	ParameterShipping            = "shipping"
	ParameterShippingTier        = "shipping_tier"
	ParameterSource              = "source"
	ParameterSourcePlatform      = "source_platform"
	ParameterStartDate           = "start_date"
	ParameterSuccess             = "success"
	ParameterTax                 = "tax"
	ParameterTerm                = "term"
	ParameterTransactionID       = "transaction_id"
	ParameterTravelClass         = "travel_class"
	ParameterValue               = "value"
	ParameterVariantID           = "variant_id"
	ParameterVirtualCurrencyName = "virtual_currency_name"
)

// User property names.
const (
	UserPropertyAllowAdPersonalizationSignals = "allow_personalized_ads"
	UserPropertySignUpMethod                  = "sign_up_method"
	UserPropertyAge                           = "age"
)
