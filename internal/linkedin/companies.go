package linkedin

import (
	"context"
	"net/http"
	"net/url"

	"github.com/florianilch/linkedin-mcp/internal/domain"
)

// adminACLQuery selects organizations the member administers, projecting
// their names so a single call suffices.
const adminACLQuery = "q=roleAssignee&role=ADMINISTRATOR" +
	"&projection=(elements*(organizationalTarget,organizationalTarget~(localizedName,vanityName)))"

// GetCompanyPage looks up an organization by id.
func (c *Client) GetCompanyPage(ctx context.Context, companyID string) (*domain.CompanyPage, error) {
	var org organization
	req := request{op: OpGetCompanyPage, method: http.MethodGet, path: "/organizations/" + url.PathEscape(companyID)}
	if _, err := c.do(ctx, req, &org); err != nil {
		return nil, err
	}

	page := &domain.CompanyPage{
		ID:          string(org.ID),
		Name:        org.LocalizedName,
		Description: org.LocalizedDescription,
		WebsiteURL:  org.WebsiteURL,
	}
	if page.ID == "" {
		page.ID = companyID
	}
	if page.WebsiteURL == "" {
		page.WebsiteURL = org.LocalizedWebsite
	}
	if len(org.Industries) > 0 {
		page.Industry = org.Industries[0]
	}
	if org.LogoV2 != nil {
		page.LogoURL = org.LogoV2.Original
	}

	return page, nil
}

// CreateCompanyPost publishes a post authored by the organization.
func (c *Client) CreateCompanyPost(ctx context.Context, in domain.CreateCompanyPostInput) (*domain.CompanyPost, error) {
	post, err := c.publish(ctx, OpCreateCompanyPost, domain.OrganizationURN(in.CompanyID), in.Text, in.Visibility.OrDefault())
	if err != nil {
		return nil, err
	}
	return &domain.CompanyPost{Post: *post, CompanyID: in.CompanyID}, nil
}

// GetCompanyPosts lists up to limit posts authored by the organization.
func (c *Client) GetCompanyPosts(ctx context.Context, companyID string, limit int) ([]domain.CompanyPost, error) {
	posts, err := c.listByAuthor(ctx, OpGetCompanyPosts, domain.OrganizationURN(companyID), limit)
	if err != nil {
		return nil, err
	}

	companyPosts := make([]domain.CompanyPost, 0, len(posts))
	for _, p := range posts {
		companyPosts = append(companyPosts, domain.CompanyPost{Post: p, CompanyID: companyID})
	}
	return companyPosts, nil
}

// GetAdministeredCompanies lists the organizations the member can post on
// behalf of.
func (c *Client) GetAdministeredCompanies(ctx context.Context) ([]domain.AdministeredCompany, error) {
	var acls organizationACLList
	req := request{op: OpGetAdminCompanies, method: http.MethodGet, path: "/organizationalEntityAcls", query: adminACLQuery}
	if _, err := c.do(ctx, req, &acls); err != nil {
		return nil, err
	}

	companies := make([]domain.AdministeredCompany, 0, len(acls.Elements))
	for _, acl := range acls.Elements {
		if acl.OrganizationalTarget == "" {
			continue
		}
		company := domain.AdministeredCompany{
			CompanyID: domain.URNID(acl.OrganizationalTarget),
			URN:       acl.OrganizationalTarget,
		}
		if acl.Target != nil {
			company.Name = acl.Target.LocalizedName
			company.VanityName = acl.Target.VanityName
		}
		companies = append(companies, company)
	}
	return companies, nil
}
