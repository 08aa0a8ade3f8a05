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

// EventKind selects how a CustomEvent names itself and which typed fields
// it contributes.
type EventKind int

const (
	KindCustom EventKind = iota
	KindLevelStarted
	KindLevelCompleted
	KindItemUsed
	KindCampaignAction
)

type CampaignActionType int

const (
	CampaignShow CampaignActionType = iota
	CampaignClick
	CampaignClose
	CampaignPurchase
)

func (a CampaignActionType) String() string {
	switch a {
	case CampaignClick:
		return "click"
	case CampaignClose:
		return "close"
	case CampaignPurchase:
		return "purchase"
	default:
		return "show"
	}
}

// EventFields holds the optional well-known fields of the predefined event
// kinds. Nil pointers and empty strings are left out of the event.
type EventFields struct {
	LevelNumber   *int32
	LevelName     string
	Map           string
	Duration      *float32
	LevelProgress *float32
	LevelReward   *int32
	LevelReward1  *int32
	LevelReward2  *int32

	ItemName     string
	Amount       *float32
	ItemType     string
	ItemRarity   string
	ItemClass    string
	ItemCategory string
	Reason       string

	CampaignID string
	VariantID  string
	Action     CampaignActionType
}

// CustomEvent is a host-defined event. Name is only consulted for KindCustom.
type CustomEvent struct {
	Kind       EventKind
	Name       string
	Parameters []eventsModel.TypedValue
	Fields     EventFields
}

func NewCustomEvent(name string, params ...eventsModel.TypedValue) CustomEvent {
	return CustomEvent{Kind: KindCustom, Name: name, Parameters: params}
}

func NewLevelStartedEvent(fields EventFields, params ...eventsModel.TypedValue) CustomEvent {
	return CustomEvent{Kind: KindLevelStarted, Fields: fields, Parameters: params}
}

func NewLevelCompletedEvent(fields EventFields, params ...eventsModel.TypedValue) CustomEvent {
	return CustomEvent{Kind: KindLevelCompleted, Fields: fields, Parameters: params}
}

func NewItemUsedEvent(fields EventFields, params ...eventsModel.TypedValue) CustomEvent {
	return CustomEvent{Kind: KindItemUsed, Fields: fields, Parameters: params}
}

func NewCampaignActionEvent(campaignID, variantID string, action CampaignActionType,
	params ...eventsModel.TypedValue) CustomEvent {

	return CustomEvent{
		Kind:       KindCampaignAction,
		Fields:     EventFields{CampaignID: campaignID, VariantID: variantID, Action: action},
		Parameters: params,
	}
}

// EventName returns the wire name for the event kind.
func (e CustomEvent) EventName() string {
	switch e.Kind {
	case KindLevelStarted:
		return EventLevelStart
	case KindLevelCompleted:
		return EventLevelCompleted
	case KindItemUsed:
		return EventItemUsed
	case KindCampaignAction:
		return EventCampaignDetails
	default:
		return e.Name
	}
}

// EventParameters returns the caller's parameters followed by the kind's
// populated fields.
func (e CustomEvent) EventParameters() []eventsModel.TypedValue {
	return ParametersFor(e.Kind, e.Parameters, e.Fields)
}

// ParametersFor appends the fields relevant to kind onto a copy of base.
func ParametersFor(kind EventKind, base []eventsModel.TypedValue, f EventFields) []eventsModel.TypedValue {

	out := append([]eventsModel.TypedValue(nil), base...)
	str := func(name, value string) {
		if value != "" {
			out = append(out, eventsModel.NewStringValue(name, value))
		}
	}
	num := func(name string, value *int32) {
		if value != nil {
			out = append(out, eventsModel.NewIntValue(name, *value))
		}
	}
	dec := func(name string, value *float32) {
		if value != nil {
			out = append(out, eventsModel.NewFloatValue(name, *value))
		}
	}

	switch kind {
	case KindLevelStarted, KindLevelCompleted:
		num(ParameterLevelNumber, f.LevelNumber)
		str(ParameterLevelName, f.LevelName)
		str(ParameterMap, f.Map)
		if kind == KindLevelCompleted {
			dec(ParameterDuration, f.Duration)
			dec(ParameterLevelProgress, f.LevelProgress)
			num(ParameterLevelReward, f.LevelReward)
			num(ParameterLevelReward1, f.LevelReward1)
			num(ParameterLevelReward2, f.LevelReward2)
		}
	case KindItemUsed:
		str(ParameterItemName, f.ItemName)
		dec(ParameterAmount, f.Amount)
		str(ParameterItemType, f.ItemType)
		str(ParameterItemRarity, f.ItemRarity)
		str(ParameterItemClass, f.ItemClass)
		str(ParameterItemCategory, f.ItemCategory)
		str(ParameterReason, f.Reason)
	case KindCampaignAction:
		str(ParameterCampaignID, f.CampaignID)
		str(ParameterVariantID, f.VariantID)
		out = append(out, eventsModel.NewStringValue(ParameterCampaignAction, f.Action.String()))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
