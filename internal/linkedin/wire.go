package linkedin

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Raw payload shapes of the LinkedIn v2 API.

const (
	shareContentKey        = "com.linkedin.ugc.ShareContent"
	memberVisibilityKey    = "com.linkedin.ugc.MemberNetworkVisibility"
	lifecyclePublished     = "PUBLISHED"
	shareMediaCategoryNone = "NONE"
)

type userInfo struct {
	Sub        string `json:"sub"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Email      string `json:"email"`
	Picture    string `json:"picture"`
}

type ugcPost struct {
	ID              string          `json:"id,omitempty"`
	Author          string          `json:"author"`
	LifecycleState  string          `json:"lifecycleState,omitempty"`
	SpecificContent specificContent `json:"specificContent"`
	Visibility      ugcVisibility   `json:"visibility"`
	Created         *auditStamp     `json:"created,omitempty"`
	Statistics      *postStatistics `json:"statistics,omitempty"`
}

type specificContent struct {
	ShareContent shareContent `json:"com.linkedin.ugc.ShareContent"`
}

type shareContent struct {
	ShareCommentary    shareCommentary `json:"shareCommentary"`
	ShareMediaCategory string          `json:"shareMediaCategory,omitempty"`
}

type shareCommentary struct {
	Text string `json:"text"`
}

type ugcVisibility struct {
	MemberNetworkVisibility string `json:"com.linkedin.ugc.MemberNetworkVisibility"`
}

type auditStamp struct {
	Time int64 `json:"time"`
}

type postStatistics struct {
	NumLikes    int `json:"numLikes"`
	NumComments int `json:"numComments"`
	NumShares   int `json:"numShares"`
}

type ugcPostList struct {
	Elements []ugcPost `json:"elements"`
}

type createdEntity struct {
	ID string `json:"id"`
}

type organization struct {
	ID                   flexibleID `json:"id"`
	LocalizedName        string     `json:"localizedName"`
	LocalizedDescription string     `json:"localizedDescription"`
	WebsiteURL           string     `json:"websiteUrl"`
	LocalizedWebsite     string     `json:"localizedWebsite"`
	Industries           []string   `json:"industries"`
	LogoV2               *struct {
		Original string `json:"original"`
	} `json:"logoV2"`
}

type organizationACLList struct {
	Elements []organizationACL `json:"elements"`
}

type organizationACL struct {
	OrganizationalTarget string `json:"organizationalTarget"`
	Target               *struct {
		LocalizedName string `json:"localizedName"`
		VanityName    string `json:"vanityName"`
	} `json:"organizationalTarget~"`
}

// flexibleID accepts identifiers encoded as JSON numbers or strings.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return err
	}
	*f = flexibleID(n.String())
	return nil
}
