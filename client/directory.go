// client/directory.go
package client

import (
	"fmt"

	"github.com/go-ldap/ldap/v3"
	"go.uber.org/zap"

	"github.com/vre-platform/portal-bff/config"
	logger "github.com/vre-platform/portal-bff/logging"
)

// IDirectoryClient manages project groups in the directory service.
type IDirectoryClient interface {
	CreateProjectGroup(projectCode, description string) error
	AddUserToGroup(username, projectCode string) error
	RemoveUserFromGroup(username, projectCode string) error
}

type DirectoryClient struct {
	url          string
	bindDN       string
	bindPassword string
	ou           string
	dc1          string
	dc2          string
	objectClass  string
	prefix       string
}

var _ IDirectoryClient = &DirectoryClient{}

func NewDirectoryClient() *DirectoryClient {
	return &DirectoryClient{
		url:          config.GetString("ldap.url"),
		bindDN:       config.GetString("ldap.bindDN"),
		bindPassword: config.GetString("ldap.bindPassword"),
		ou:           config.GetString("ldap.ou"),
		dc1:          config.GetString("ldap.dc1"),
		dc2:          config.GetString("ldap.dc2"),
		objectClass:  config.GetString("ldap.objectClass"),
		prefix:       config.GetString("ldap.prefix"),
	}
}

func (d *DirectoryClient) connect() (*ldap.Conn, error) {
	conn, err := ldap.DialURL(d.url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial directory service: %w", err)
	}
	if err := conn.Bind(d.bindDN, d.bindPassword); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to bind to directory service: %w", err)
	}
	return conn, nil
}

func (d *DirectoryClient) groupDN(projectCode string) string {
	return fmt.Sprintf("cn=%s-%s,ou=Gruppen,ou=%s,dc=%s,dc=%s",
		d.prefix, projectCode, d.ou, d.dc1, d.dc2)
}

func (d *DirectoryClient) baseDN() string {
	return fmt.Sprintf("dc=%s,dc=%s", d.dc1, d.dc2)
}

// CreateProjectGroup creates the directory group of a new project.
func (d *DirectoryClient) CreateProjectGroup(projectCode, description string) error {
	conn, err := d.connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	groupName := fmt.Sprintf("%s-%s", d.prefix, projectCode)
	request := ldap.NewAddRequest(d.groupDN(projectCode), nil)
	request.Attribute("objectClass", []string{d.objectClass})
	request.Attribute("sAMAccountName", []string{groupName})
	if description != "" {
		request.Attribute("description", []string{description})
	}
	if err := conn.Add(request); err != nil {
		return fmt.Errorf("failed to create group %s: %w", groupName, err)
	}
	logger.Info("Directory group created", zap.String("group", groupName))
	return nil
}

func (d *DirectoryClient) findUserDN(conn *ldap.Conn, username string) (string, error) {
	request := ldap.NewSearchRequest(
		d.baseDN(),
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		1, 0, false,
		fmt.Sprintf("(sAMAccountName=%s)", ldap.EscapeFilter(username)),
		[]string{"dn"},
		nil,
	)
	result, err := conn.Search(request)
	if err != nil {
		return "", fmt.Errorf("failed to search for user %s: %w", username, err)
	}
	if len(result.Entries) == 0 {
		return "", fmt.Errorf("user %s not found in directory", username)
	}
	return result.Entries[0].DN, nil
}

func (d *DirectoryClient) AddUserToGroup(username, projectCode string) error {
	conn, err := d.connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	userDN, err := d.findUserDN(conn, username)
	if err != nil {
		return err
	}
	request := ldap.NewModifyRequest(d.groupDN(projectCode), nil)
	request.Add("member", []string{userDN})
	if err := conn.Modify(request); err != nil {
		return fmt.Errorf("failed to add %s to group: %w", username, err)
	}
	logger.Info("User added to directory group",
		zap.String("username", username),
		zap.String("project_code", projectCode))
	return nil
}

func (d *DirectoryClient) RemoveUserFromGroup(username, projectCode string) error {
	conn, err := d.connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	userDN, err := d.findUserDN(conn, username)
	if err != nil {
		return err
	}
	request := ldap.NewModifyRequest(d.groupDN(projectCode), nil)
	request.Delete("member", []string{userDN})
	if err := conn.Modify(request); err != nil {
		return fmt.Errorf("failed to remove %s from group: %w", username, err)
	}
	logger.Info("User removed from directory group",
		zap.String("username", username),
		zap.String("project_code", projectCode))
	return nil
}
