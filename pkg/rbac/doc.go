// Package rbac maps named roles to the resource paths they may access.
// It supports role inheritance and wildcard path patterns.
//
// Key concepts:
//
//   - Role: a named set of accessible resource paths, optionally inheriting
//     from other roles
//   - Path: a rooted, slash-delimited resource path (e.g. "/admin/users")
//   - Wildcards: "*" grants everything, "/admin/*" grants the /admin subtree
//
// Basic usage:
//
//	roles := map[string]rbac.Role{
//	    "viewer": {
//	        Paths: []string{"/dashboard", "/reports"},
//	    },
//	    "editor": {
//	        Paths:    []string{"/content/*"},
//	        Inherits: []string{"viewer"},
//	    },
//	    "admin": {
//	        Paths:    []string{"/admin/*"},
//	        Inherits: []string{"editor"},
//	    },
//	}
//
//	source := rbac.NewInMemRoleSource(roles)
//	auth, err := rbac.NewAuthorizer(ctx, source)
//
//	if err := auth.Can("editor", "/content/posts"); err != nil {
//	    // access denied
//	}
//
// Roles can also be loaded from a YAML file via NewFileRoleSource, which is
// the usual deployment shape for static role definitions.
package rbac
